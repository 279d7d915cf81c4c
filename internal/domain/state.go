package domain

import "context"

// AppState is the root aggregate: every bank account plus every month's
// budget, keyed by "YYYY-MM". It is the unit of persistence: backends
// load and save the whole document, never deltas.
type AppState struct {
	BankAccounts []Account                 `json:"bankAccounts"`
	MonthlyData  map[string]*MonthlyBudget `json:"monthlyData"`
}

// NewAppState returns an empty state.
func NewAppState() *AppState {
	return &AppState{
		BankAccounts: []Account{},
		MonthlyData:  map[string]*MonthlyBudget{},
	}
}

// AccountByID returns the account with the given id, or nil.
func (s *AppState) AccountByID(id int64) *Account {
	for i := range s.BankAccounts {
		if s.BankAccounts[i].ID == id {
			return &s.BankAccounts[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the state. Persist tasks run on clones so
// they are safe against mutations issued after dispatch.
func (s *AppState) Clone() *AppState {
	clone := &AppState{
		BankAccounts: make([]Account, len(s.BankAccounts)),
		MonthlyData:  make(map[string]*MonthlyBudget, len(s.MonthlyData)),
	}
	copy(clone.BankAccounts, s.BankAccounts)
	for key, mb := range s.MonthlyData {
		clone.MonthlyData[key] = mb.Clone()
	}
	return clone
}

// Normalize repairs a freshly loaded state: nil collections become empty,
// icon-less categories get the default icon. Loaded snapshots from older
// writers may miss any of these.
func (s *AppState) Normalize() {
	if s.BankAccounts == nil {
		s.BankAccounts = []Account{}
	}
	if s.MonthlyData == nil {
		s.MonthlyData = map[string]*MonthlyBudget{}
	}
	for _, mb := range s.MonthlyData {
		if mb.Categories == nil {
			mb.Categories = []Category{}
		}
		if mb.Expenses == nil {
			mb.Expenses = []Expense{}
		}
		for i := range mb.Categories {
			if mb.Categories[i].Icon == "" {
				mb.Categories[i].Icon = DefaultIcon
			}
		}
	}
}

// SnapshotRepository is the persistence port. Load returns
// ErrSnapshotNotFound when nothing has been persisted yet; Save replaces
// the whole persisted document (last write wins).
type SnapshotRepository interface {
	Load(ctx context.Context) (*AppState, error)
	Save(ctx context.Context, state *AppState) error
}

// SnapshotSubscriber is implemented by backends that can push externally
// written snapshots back into the process (another device writing the
// same document). The callback receives a fully replaced AppState.
// The returned function cancels the subscription.
type SnapshotSubscriber interface {
	Subscribe(ctx context.Context, onExternalUpdate func(*AppState)) (func(), error)
}
