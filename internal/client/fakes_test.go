package client

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/yourusername/ytdl-gateway/internal/domain"
)

// fakeBackend implements Backend for testing
type fakeBackend struct {
	mu sync.Mutex

	online    bool
	meta      *domain.VideoMetadata
	infoErr   error
	link      *domain.ResolvedLink
	linkErr   error
	tasks     []domain.DownloadTask
	tasksErr  error
	history   []domain.HistoryEntry
	stats     domain.Stats
	cancelErr error
	files     map[string]string

	infoCalls     []string
	downloadCalls []string
	taskCalls     int
	cancelled     []string
	searches      []string
	deleted       []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{online: true, files: map[string]string{}}
}

func (f *fakeBackend) VideoInfo(ctx context.Context, videoURL string) (*domain.VideoMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infoCalls = append(f.infoCalls, videoURL)
	return f.meta, f.infoErr
}

func (f *fakeBackend) Download(ctx context.Context, videoURL, quality, format string) (*domain.ResolvedLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloadCalls = append(f.downloadCalls, videoURL+"|"+quality+"|"+format)
	return f.link, f.linkErr
}

func (f *fakeBackend) Tasks(ctx context.Context) ([]domain.DownloadTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.taskCalls++
	return append([]domain.DownloadTask(nil), f.tasks...), f.tasksErr
}

func (f *fakeBackend) CancelTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeBackend) History(ctx context.Context, search string) ([]domain.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, search)
	return append([]domain.HistoryEntry(nil), f.history...), nil
}

func (f *fakeBackend) DeleteHistory(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) Stats(ctx context.Context) (*domain.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.online {
		return nil, errors.New("connection refused")
	}
	stats := f.stats
	return &stats, nil
}

func (f *fakeBackend) Ping(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.online
}

func (f *fakeBackend) OpenFile(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.files[name]
	if !ok {
		return nil, 0, &APIError{Status: 404, Message: "file not found"}
	}
	return io.NopCloser(strings.NewReader(content)), int64(len(content)), nil
}

// memorySettingsRepo implements domain.SettingsRepository for testing
type memorySettingsRepo struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func newMemorySettingsRepo() *memorySettingsRepo {
	return &memorySettingsRepo{values: map[string]string{}}
}

func (m *memorySettingsRepo) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memorySettingsRepo) Put(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *memorySettingsRepo) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.values, key)
	return nil
}
