package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/shopspring/decimal"

	"github.com/marketbay/auctiondesk/core"
)

// Snapshot is the last rendered dashboard state, persisted so a restart can
// paint immediately while the first live fetch is still in flight. It is a
// display cache only; the service remains authoritative and the next
// refresh overwrites it.
type Snapshot struct {
	SavedAt  time.Time
	Auctions []core.Auction
	Bids     map[string][]core.Bid
}

// The on-disk shape keeps amounts as decimal strings so the codec never
// touches their precision.
type snapshotFile struct {
	SavedAt  time.Time                `cbor:"savedAt"`
	Auctions []snapshotAuction        `cbor:"auctions"`
	Bids     map[string][]snapshotBid `cbor:"bids"`
}

type snapshotAuction struct {
	AuctionID         string    `cbor:"auctionId"`
	Title             string    `cbor:"title"`
	ImageURL          string    `cbor:"imageUrl,omitempty"`
	StartPrice        string    `cbor:"startPrice"`
	ReservePrice      string    `cbor:"reservePrice"`
	MinIncrement      string    `cbor:"minIncrement"`
	StartAt           time.Time `cbor:"startAt"`
	EndAt             time.Time `cbor:"endAt"`
	Status            string    `cbor:"status"`
	ParticipantsCount int       `cbor:"participantsCount"`
}

type snapshotBid struct {
	BidID     string    `cbor:"bidId"`
	AuctionID string    `cbor:"auctionId"`
	Name      string    `cbor:"name"`
	AvatarURL string    `cbor:"avatarUrl,omitempty"`
	Amount    string    `cbor:"amount"`
	CreatedAt time.Time `cbor:"createdAt"`
}

// SaveSnapshot writes the snapshot to path, replacing any previous one.
func SaveSnapshot(path string, s *Snapshot) error {
	file := snapshotFile{
		SavedAt:  s.SavedAt,
		Auctions: make([]snapshotAuction, len(s.Auctions)),
		Bids:     make(map[string][]snapshotBid, len(s.Bids)),
	}
	for i, a := range s.Auctions {
		file.Auctions[i] = snapshotAuction{
			AuctionID:         a.AuctionID,
			Title:             a.Item.Title,
			ImageURL:          a.Item.ImageURL,
			StartPrice:        a.StartPrice.String(),
			ReservePrice:      a.ReservePrice.String(),
			MinIncrement:      a.MinIncrement.String(),
			StartAt:           a.StartAt,
			EndAt:             a.EndAt,
			Status:            string(a.Status),
			ParticipantsCount: a.ParticipantsCount,
		}
	}
	for id, bids := range s.Bids {
		encoded := make([]snapshotBid, len(bids))
		for i, b := range bids {
			encoded[i] = snapshotBid{
				BidID:     b.BidID,
				AuctionID: b.AuctionID,
				Name:      b.Bidder.Name,
				AvatarURL: b.Bidder.AvatarURL,
				Amount:    b.Amount.String(),
				CreatedAt: b.CreatedAt,
			}
		}
		file.Bids[id] = encoded
	}

	raw, err := cbor.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot back. A missing file yields (nil, nil); a
// corrupt one yields an error the caller is expected to treat as a cache
// miss, never as fatal.
func LoadSnapshot(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var file snapshotFile
	if err := cbor.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	s := &Snapshot{
		SavedAt:  file.SavedAt,
		Auctions: make([]core.Auction, len(file.Auctions)),
		Bids:     make(map[string][]core.Bid, len(file.Bids)),
	}
	for i, a := range file.Auctions {
		s.Auctions[i] = core.Auction{
			AuctionID:         a.AuctionID,
			Item:              core.ItemRef{Title: a.Title, ImageURL: a.ImageURL},
			StartPrice:        parseAmount(a.StartPrice),
			ReservePrice:      parseAmount(a.ReservePrice),
			MinIncrement:      parseAmount(a.MinIncrement),
			StartAt:           a.StartAt,
			EndAt:             a.EndAt,
			Status:            core.Status(a.Status),
			ParticipantsCount: a.ParticipantsCount,
		}
	}
	for id, bids := range file.Bids {
		decoded := make([]core.Bid, len(bids))
		for i, b := range bids {
			decoded[i] = core.Bid{
				BidID:     b.BidID,
				AuctionID: b.AuctionID,
				Bidder:    core.BidderRef{Name: b.Name, AvatarURL: b.AvatarURL},
				Amount:    parseAmount(b.Amount),
				CreatedAt: b.CreatedAt,
			}
		}
		s.Bids[id] = decoded
	}
	return s, nil
}

func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
