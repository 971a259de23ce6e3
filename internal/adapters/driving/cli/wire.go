package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/swamp/internal/adapters/driven/index"
	"github.com/custodia-labs/swamp/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/swamp/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/swamp/internal/adapters/driving/lineproto"
	"github.com/custodia-labs/swamp/internal/core/domain"
	"github.com/custodia-labs/swamp/internal/core/ports/driven"
	"github.com/custodia-labs/swamp/internal/core/services"
	"github.com/custodia-labs/swamp/internal/logger"
)

// session is the set of services behind one run of line commands.
type session struct {
	settings domain.AppSettings
	store    driven.RecordStore
	todo     *services.TodoService
	parser   *lineproto.Parser
}

// newSession wires a record store, field index and search engine from
// settings.
func newSession(settings domain.AppSettings) (*session, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	alphabet, err := domain.NewAlphabet(settings.Index.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("index alphabet: %w", err)
	}

	store, err := newRecordStore(settings.Store.Backend)
	if err != nil {
		return nil, err
	}

	fields, err := services.NewFieldIndex(index.NewFactory(), settings.Index.Strategy, alphabet)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("building index: %w", err)
	}
	engine := services.NewSearchEngine(fields, settings.Index.PropagateFilter)

	logger.Debug("Session: %s index, %s store, propagate filter %t",
		settings.Index.Strategy, settings.Store.Backend, settings.Index.PropagateFilter)

	return &session{
		settings: settings,
		store:    store,
		todo:     services.NewTodoService(store, fields, engine),
		parser:   lineproto.NewParser(alphabet),
	}, nil
}

// newRecordStore opens the record store for backend.
func newRecordStore(backend domain.StoreBackend) (driven.RecordStore, error) {
	switch backend {
	case domain.StoreBackendMemory:
		return memory.NewRecordStore(), nil
	case domain.StoreBackendSQLite:
		store, err := sqlite.NewStore()
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Debug("Opened sqlite database %s", store.Name())
		return store, nil
	default:
		return nil, fmt.Errorf("store backend %q: %w", backend, domain.ErrUnsupportedType)
	}
}

// runner returns a line runner writing to out and errOut.
func (s *session) runner(out, errOut io.Writer) *lineproto.Runner {
	r := lineproto.NewRunner(s.todo, s.parser, out, errOut)
	r.SetHeader(s.settings.Input.Header)
	return r
}

// Close releases the record store.
func (s *session) Close() error {
	return s.store.Close()
}

// loadSettings reads the effective settings.
func loadSettings() (domain.AppSettings, error) {
	if settingsService == nil {
		return domain.AppSettings{}, errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return domain.AppSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return *settings, nil
}
