package tracking_test

import (
	"context"
	"sync"

	"github.com/dmitrymomot/mailtrack/svc/tracker"
)

type listCall struct {
	Page   int
	Search string
}

// fakeBackend answers from fixed data. A hook, when set, runs before a list
// call returns and may block it.
type fakeBackend struct {
	mu        sync.Mutex
	pages     int
	records   []tracker.TrackingRecord
	listErr   error
	calls     []listCall
	hook      func(call listCall)
	details   *tracker.TrackingDetails
	detailErr error
	cleared   []string
	clearErr  error
}

func (f *fakeBackend) ListTracking(_ context.Context, page int, search string) (*tracker.TrackingPage, error) {
	f.mu.Lock()
	call := listCall{Page: page, Search: search}
	f.calls = append(f.calls, call)
	hook, err, pages := f.hook, f.listErr, f.pages
	records := f.records
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if err != nil {
		return nil, err
	}
	if pages == 0 {
		pages = 1
	}
	return &tracker.TrackingPage{Records: records, CurrentPage: page, Pages: pages, Total: len(records), PerPage: 20}, nil
}

func (f *fakeBackend) TrackingDetails(_ context.Context, id string) (*tracker.TrackingDetails, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.details, nil
}

func (f *fakeBackend) ClearDatabase(_ context.Context, confirmation string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clearErr != nil {
		return "", f.clearErr
	}
	f.cleared = append(f.cleared, confirmation)
	return "Database cleared", nil
}

func (f *fakeBackend) listCalls() []listCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]listCall(nil), f.calls...)
}
