// Package sequence hands out gap-free invoice numbers from a Firestore
// counter document.
package sequence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"tripbill/internal/gcp"
	"tripbill/internal/logger"
)

const (
	DefaultCollection = "counters"
	DefaultDocument   = "invoiceNumber"
)

var ErrMissingProject = errors.New("firestore project id is empty")

// Counter is the stored state of the sequence.
type Counter struct {
	Current     int64  `firestore:"current"`
	LastUpdated string `firestore:"lastUpdated"`
}

// Format renders a sequence value as the printed invoice number, e.g. 1 -> "#00001".
func Format(n int64) string {
	return fmt.Sprintf("#%05d", n)
}

// FirestoreSequencer increments the counter inside a transaction, so
// concurrent callers never receive the same number.
type FirestoreSequencer struct {
	client *firestore.Client
	ref    *firestore.DocumentRef
	now    func() time.Time
	log    zerolog.Logger
}

// NewFirestoreSequencer connects to Firestore using the shared service-account credentials.
func NewFirestoreSequencer(ctx context.Context, projectID, collection, document string) (*FirestoreSequencer, error) {
	const op = "NewFirestoreSequencer"

	if projectID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingProject)
	}

	opt, err := gcp.ClientOption()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client, err := firestore.NewClient(ctx, projectID, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create firestore client: %w", op, err)
	}

	return NewFirestoreSequencerWithClient(client, collection, document), nil
}

// NewFirestoreSequencerWithClient uses an existing client. Empty names
// fall back to counters/invoiceNumber.
func NewFirestoreSequencerWithClient(client *firestore.Client, collection, document string) *FirestoreSequencer {
	if collection == "" {
		collection = DefaultCollection
	}
	if document == "" {
		document = DefaultDocument
	}
	return &FirestoreSequencer{
		client: client,
		ref:    client.Collection(collection).Doc(document),
		now:    time.Now,
		log:    logger.WithComponent("sequence"),
	}
}

// Next increments the counter and returns the formatted number.
func (s *FirestoreSequencer) Next(ctx context.Context) (string, error) {
	const op = "Next"

	var next int64
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(s.ref)
		current, err := currentValue(snap, err)
		if err != nil {
			return err
		}

		next = current + 1
		return tx.Set(s.ref, Counter{
			Current:     next,
			LastUpdated: s.now().UTC().Format(time.RFC3339Nano),
		})
	})
	if err != nil {
		return "", fmt.Errorf("%s: failed to increment %s: %w", op, s.ref.Path, err)
	}

	s.log.Debug().Int64("current", next).Msg("Invoice counter incremented")
	return Format(next), nil
}

// currentValue reads the counter from a transactional get. A missing
// document starts the sequence at zero.
func currentValue(snap *firestore.DocumentSnapshot, err error) (int64, error) {
	if status.Code(err) == codes.NotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if snap == nil || !snap.Exists() {
		return 0, nil
	}

	var c Counter
	if err := snap.DataTo(&c); err != nil {
		return 0, fmt.Errorf("malformed counter document: %w", err)
	}
	if c.Current < 0 {
		return 0, fmt.Errorf("malformed counter document: negative value %d", c.Current)
	}
	return c.Current, nil
}

// Close releases the Firestore client.
func (s *FirestoreSequencer) Close() error {
	return s.client.Close()
}
