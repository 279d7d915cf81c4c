package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	"github.com/arkhew/moneta/moneta-backend/internal/util"
	"github.com/arkhew/moneta/moneta-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// persistTimeout bounds a single background save attempt.
const persistTimeout = 30 * time.Second

// StateStore owns the canonical in-memory AppState and the current month
// selection. Every mutation produces the next consistent state, publishes
// a change event, and dispatches a fire-and-forget persist of a state
// snapshot. Persist failures are logged and dropped; the last successful
// whole-document write wins.
type StateStore struct {
	mu           sync.RWMutex
	state        *domain.AppState
	currentMonth string

	repo      domain.SnapshotRepository
	publisher websocket.EventPublisher
}

// NewStateStore creates a StateStore starting from an empty state with the
// present calendar month selected.
func NewStateStore(repo domain.SnapshotRepository, publisher websocket.EventPublisher) *StateStore {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &StateStore{
		state:        domain.NewAppState(),
		currentMonth: util.CurrentMonthKey(),
		repo:         repo,
		publisher:    publisher,
	}
}

// Load replaces the in-memory state with the persisted snapshot. A missing
// or unreadable snapshot falls back to an empty state; the session always
// starts.
func (s *StateStore) Load(ctx context.Context) error {
	state, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		log.Info().Msg("No persisted state, starting empty")
		state = domain.NewAppState()
	case err != nil:
		log.Warn().Err(err).Msg("Failed to load persisted state, starting empty")
		state = domain.NewAppState()
	}

	state.Normalize()
	domain.SeedIDs(state)

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// persist saves a snapshot in the background. The snapshot is a deep copy
// taken at dispatch time, so it cannot tear against later mutations.
func (s *StateStore) persist(snapshot *domain.AppState) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := s.repo.Save(ctx, snapshot); err != nil {
			log.Error().Err(err).Msg("Failed to persist state")
		}
	}()
}

// Snapshot returns a deep copy of the current state for derivations.
func (s *StateStore) Snapshot() *domain.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// CurrentMonthKey returns the currently selected month.
func (s *StateStore) CurrentMonthKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentMonth
}

// SelectMonth changes the current month selection. The month's budget is
// not created here; it is seeded lazily by the next access.
func (s *StateStore) SelectMonth(key string) error {
	if !util.ValidMonthKey(key) {
		return domain.ErrInvalidMonthKey
	}

	s.mu.Lock()
	s.currentMonth = key
	s.mu.Unlock()
	return nil
}

// ensureMonthLocked returns the month's budget, seeding it with the
// default categories on first access. Callers must hold the write lock.
// Reports whether the month was created.
func (s *StateStore) ensureMonthLocked(key string) (*domain.MonthlyBudget, bool) {
	if mb, ok := s.state.MonthlyData[key]; ok {
		return mb, false
	}
	mb := domain.NewMonthlyBudget()
	s.state.MonthlyData[key] = mb
	return mb, true
}

// Month returns a copy of the month's budget, creating and seeding it on
// first access.
func (s *StateStore) Month(key string) (*domain.MonthlyBudget, error) {
	if !util.ValidMonthKey(key) {
		return nil, domain.ErrInvalidMonthKey
	}

	s.mu.Lock()
	mb, created := s.ensureMonthLocked(key)
	clone := mb.Clone()
	var snapshot *domain.AppState
	if created {
		snapshot = s.state.Clone()
	}
	s.mu.Unlock()

	if created {
		s.persist(snapshot)
		s.publisher.Publish(websocket.MonthUpdated(map[string]interface{}{"month": key}))
	}
	return clone, nil
}

// Accounts returns a copy of all accounts.
func (s *StateStore) Accounts() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]domain.Account, len(s.state.BankAccounts))
	copy(accounts, s.state.BankAccounts)
	return accounts
}

func validateName(name string, maxLen int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if len(name) > maxLen {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}

// AddAccount creates a bank account.
func (s *StateStore) AddAccount(name string, initialBalance decimal.Decimal) (domain.Account, error) {
	name, err := validateName(name, domain.MaxAccountNameLength)
	if err != nil {
		return domain.Account{}, err
	}

	account := domain.Account{
		ID:             domain.NextID(),
		Name:           name,
		InitialBalance: initialBalance,
	}

	s.mu.Lock()
	s.state.BankAccounts = append(s.state.BankAccounts, account)
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	s.publisher.Publish(websocket.AccountCreated(account))
	return account, nil
}

// UpdateAccount replaces an account's name and initial balance in place,
// preserving its identity. Updating an unknown id is a no-op.
func (s *StateStore) UpdateAccount(account domain.Account) (domain.Account, error) {
	name, err := validateName(account.Name, domain.MaxAccountNameLength)
	if err != nil {
		return domain.Account{}, err
	}
	account.Name = name

	s.mu.Lock()
	existing := s.state.AccountByID(account.ID)
	if existing == nil {
		s.mu.Unlock()
		return account, nil
	}
	*existing = account
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	s.publisher.Publish(websocket.AccountUpdated(account))
	return account, nil
}

// DeleteAccount removes an account and cascades removal of every expense
// referencing it, in every month. Deleting an unknown id is a no-op.
func (s *StateStore) DeleteAccount(id int64) {
	s.mu.Lock()
	found := false
	for i := range s.state.BankAccounts {
		if s.state.BankAccounts[i].ID == id {
			s.state.BankAccounts = append(s.state.BankAccounts[:i], s.state.BankAccounts[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}

	for _, mb := range s.state.MonthlyData {
		kept := mb.Expenses[:0]
		for _, exp := range mb.Expenses {
			if exp.BankAccountID != id {
				kept = append(kept, exp)
			}
		}
		mb.Expenses = kept
	}
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	s.publisher.Publish(websocket.AccountDeleted(map[string]int64{"id": id}))
}

// SetSalary replaces the monthly salary for the current month.
func (s *StateStore) SetSalary(amount decimal.Decimal) {
	s.mu.Lock()
	key := s.currentMonth
	mb, _ := s.ensureMonthLocked(key)
	mb.MonthlySalary = amount
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	s.publisher.Publish(websocket.MonthUpdated(map[string]interface{}{"month": key, "monthlySalary": amount}))
}

// AddCategory appends a category to the current month with the next
// palette color. An existing "Daily Spends" is reused instead of
// duplicated, keeping at most one per month; a non-default icon in the
// request is applied to the reused category.
func (s *StateStore) AddCategory(name, icon string) (domain.Category, error) {
	name, err := validateName(name, domain.MaxCategoryNameLength)
	if err != nil {
		return domain.Category{}, err
	}
	if icon == "" {
		icon = domain.DefaultIcon
	}

	s.mu.Lock()
	mb, _ := s.ensureMonthLocked(s.currentMonth)

	if strings.EqualFold(name, domain.DailySpendsName) {
		if existing := mb.CategoryByName(domain.DailySpendsName); existing != nil {
			if icon != domain.DefaultIcon && existing.Icon != icon {
				existing.Icon = icon
				category := *existing
				snapshot := s.state.Clone()
				s.mu.Unlock()

				s.persist(snapshot)
				s.publisher.Publish(websocket.CategoryUpdated(category))
				return category, nil
			}
			category := *existing
			s.mu.Unlock()
			return category, nil
		}
	}

	category := domain.Category{
		ID:     domain.NextID(),
		Name:   name,
		Amount: decimal.Zero,
		Color:  domain.PaletteColor(len(mb.Categories)),
		Icon:   icon,
	}
	mb.Categories = append(mb.Categories, category)
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	s.publisher.Publish(websocket.CategoryCreated(category))
	return category, nil
}

// UpdateCategory replaces a category by identity within its owning month.
// Updating an unknown id is a no-op.
func (s *StateStore) UpdateCategory(category domain.Category) (domain.Category, error) {
	name, err := validateName(category.Name, domain.MaxCategoryNameLength)
	if err != nil {
		return domain.Category{}, err
	}
	category.Name = name
	if category.Icon == "" {
		category.Icon = domain.DefaultIcon
	}

	s.mu.Lock()
	var found bool
	for _, mb := range s.state.MonthlyData {
		if existing := mb.CategoryByID(category.ID); existing != nil {
			*existing = category
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return category, nil
	}
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	s.publisher.Publish(websocket.CategoryUpdated(category))
	return category, nil
}

// DeleteCategory removes a category from the current month. Deleting an
// unknown id is a no-op; expenses still referencing the category keep
// their dangling reference and degrade to an absent lookup on read.
func (s *StateStore) DeleteCategory(id int64) {
	s.mu.Lock()
	mb, ok := s.state.MonthlyData[s.currentMonth]
	if !ok {
		s.mu.Unlock()
		return
	}

	found := false
	for i := range mb.Categories {
		if mb.Categories[i].ID == id {
			mb.Categories = append(mb.Categories[:i], mb.Categories[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	s.publisher.Publish(websocket.CategoryDeleted(map[string]int64{"id": id}))
}

// ensureDailySpendsLocked returns the month's "Daily Spends" category,
// creating it when absent. Callers must hold the write lock.
func (s *StateStore) ensureDailySpendsLocked(mb *domain.MonthlyBudget) *domain.Category {
	if existing := mb.CategoryByName(domain.DailySpendsName); existing != nil {
		return existing
	}

	category := domain.Category{
		ID:     domain.NextID(),
		Name:   domain.DailySpendsName,
		Amount: decimal.Zero,
		Color:  domain.PaletteColor(len(mb.Categories)),
		Icon:   domain.DefaultIcon,
	}
	mb.Categories = append(mb.Categories, category)
	return mb.CategoryByID(category.ID)
}

// AddExpense records an expense into the month derived from its date,
// ensures that month's "Daily Spends" category exists, and prepends the
// expense so the newest entry lists first.
func (s *StateStore) AddExpense(description string, amount decimal.Decimal, date string, accountID int64) (domain.Expense, error) {
	description, err := validateName(description, domain.MaxDescriptionLength)
	if err != nil {
		return domain.Expense{}, err
	}
	if !util.ValidDate(date) {
		return domain.Expense{}, domain.ErrInvalidDate
	}

	key := util.MonthKeyFromDate(date)

	s.mu.Lock()
	mb, _ := s.ensureMonthLocked(key)
	category := s.ensureDailySpendsLocked(mb)

	expense := domain.Expense{
		ID:            domain.NextID(),
		Description:   description,
		Amount:        amount,
		Date:          date,
		BankAccountID: accountID,
		CategoryID:    category.ID,
	}
	mb.Expenses = append([]domain.Expense{expense}, mb.Expenses...)
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	s.publisher.Publish(websocket.ExpenseCreated(expense))
	return expense, nil
}

// UpdateExpense replaces an expense by identity. When the date's month
// changed, the expense migrates from its old month's list into the month
// derived from the new date. Updating an unknown id is a no-op.
func (s *StateStore) UpdateExpense(expense domain.Expense) (domain.Expense, error) {
	description, err := validateName(expense.Description, domain.MaxDescriptionLength)
	if err != nil {
		return domain.Expense{}, err
	}
	expense.Description = description
	if !util.ValidDate(expense.Date) {
		return domain.Expense{}, domain.ErrInvalidDate
	}

	newKey := util.MonthKeyFromDate(expense.Date)

	s.mu.Lock()
	oldKey, index := s.findExpenseLocked(expense.ID)
	if oldKey == "" {
		s.mu.Unlock()
		return expense, nil
	}

	if oldKey == newKey {
		s.state.MonthlyData[oldKey].Expenses[index] = expense
	} else {
		old := s.state.MonthlyData[oldKey]
		old.Expenses = append(old.Expenses[:index], old.Expenses[index+1:]...)
		mb, _ := s.ensureMonthLocked(newKey)
		mb.Expenses = append([]domain.Expense{expense}, mb.Expenses...)
	}
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	s.publisher.Publish(websocket.ExpenseUpdated(expense))
	return expense, nil
}

// DeleteExpense removes an expense by identity from whichever month holds
// it. Identities are globally unique, so at most one removal occurs; an
// unknown id is a no-op.
func (s *StateStore) DeleteExpense(id int64) {
	s.mu.Lock()
	key, index := s.findExpenseLocked(id)
	if key == "" {
		s.mu.Unlock()
		return
	}

	mb := s.state.MonthlyData[key]
	mb.Expenses = append(mb.Expenses[:index], mb.Expenses[index+1:]...)
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	s.publisher.Publish(websocket.ExpenseDeleted(map[string]int64{"id": id}))
}

// findExpenseLocked locates an expense across all months. Callers must
// hold the lock. Returns ("", 0) when absent.
func (s *StateStore) findExpenseLocked(id int64) (string, int) {
	for key, mb := range s.state.MonthlyData {
		for i := range mb.Expenses {
			if mb.Expenses[i].ID == id {
				return key, i
			}
		}
	}
	return "", 0
}

// Reset replaces the in-memory state with an empty one and re-selects the
// present calendar month. Persisted data is left untouched.
func (s *StateStore) Reset() {
	s.mu.Lock()
	s.state = domain.NewAppState()
	s.currentMonth = util.CurrentMonthKey()
	s.mu.Unlock()

	s.publisher.Publish(websocket.StateReplaced(nil))
	log.Info().Msg("State reset")
}

// ApplyExternalState replaces the local state with one pushed in by a
// live-sync backend: last writer wins, no merge. The push is not
// re-persisted, so backends that echo their own writes cannot loop.
func (s *StateStore) ApplyExternalState(state *domain.AppState) {
	if state == nil {
		state = domain.NewAppState()
	}
	state.Normalize()
	domain.SeedIDs(state)

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	s.publisher.Publish(websocket.StateReplaced(nil))
	log.Info().Msg("Applied externally updated state")
}
