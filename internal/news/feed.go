package news

import (
	"fmt"
	"sync"

	ndnews "github.com/campuskit/go-newsdesk/news"

	"github.com/campuskit/go-newsdesk/pkg/interfaces"
)

// feed maps raw store snapshots into record slices, one delivery per
// snapshot, preserving store order. Documents that fail the record schema are
// logged and skipped; a bad document never takes the dashboard down.
type feed struct {
	sub    interfaces.Subscription
	codec  *codec
	logger interfaces.Logger

	out chan []*ndnews.Record

	mu  sync.Mutex
	err error
}

var _ ndnews.Feed = (*feed)(nil)

func newFeed(sub interfaces.Subscription, codec *codec, logger interfaces.Logger) *feed {
	f := &feed{
		sub:    sub,
		codec:  codec,
		logger: logger,
		out:    make(chan []*ndnews.Record),
	}
	go f.pump()
	return f
}

func (f *feed) Records() <-chan []*ndnews.Record { return f.out }

func (f *feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *feed) Close() error {
	return f.sub.Close()
}

func (f *feed) pump() {
	defer close(f.out)
	for snapshot := range f.sub.Snapshots() {
		f.out <- f.mapSnapshot(snapshot)
	}
	if err := f.sub.Err(); err != nil {
		f.mu.Lock()
		f.err = fmt.Errorf("%w: %v", ndnews.ErrSubscription, err)
		f.mu.Unlock()
	}
}

func (f *feed) mapSnapshot(snapshot interfaces.Snapshot) []*ndnews.Record {
	records := make([]*ndnews.Record, 0, len(snapshot.Docs))
	for _, doc := range snapshot.Docs {
		record, err := f.codec.decode(doc)
		if err != nil {
			f.logger.Warn("news.snapshot.document_skipped", "collection", snapshot.Collection, "error", err)
			continue
		}
		records = append(records, record)
	}
	return records
}
