// Package memory provides an in-process TransactionStore.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SscSPs/tradebook/internal/apperrors"
	"github.com/SscSPs/tradebook/internal/core/domain"
	portsrepo "github.com/SscSPs/tradebook/internal/core/ports/repositories"
	"github.com/SscSPs/tradebook/internal/utils/accounting"
)

type key struct {
	workplaceID string
	id          string
}

type dataset struct {
	accounts  map[key]domain.Account
	sales     map[key]domain.Sale
	purchases map[key]domain.Purchase
	payments  []domain.Payment
	ledger    []domain.LedgerEntry
}

func newDataset() *dataset {
	return &dataset{
		accounts:  map[key]domain.Account{},
		sales:     map[key]domain.Sale{},
		purchases: map[key]domain.Purchase{},
	}
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	for k, v := range d.accounts {
		c.accounts[k] = v
	}
	for k, v := range d.sales {
		c.sales[k] = v
	}
	for k, v := range d.purchases {
		c.purchases[k] = v
	}
	c.payments = append([]domain.Payment(nil), d.payments...)
	c.ledger = append([]domain.LedgerEntry(nil), d.ledger...)
	return c
}

// journal records which rows a unit of work touched so commit can merge them into the live data.
type journal struct {
	accounts  map[key]struct{}
	sales     map[key]struct{}
	purchases map[key]struct{}
	payments  int // len(payments) when the unit of work started
	ledger    int
}

func newJournal(d *dataset) *journal {
	return &journal{
		accounts:  map[key]struct{}{},
		sales:     map[key]struct{}{},
		purchases: map[key]struct{}{},
		payments:  len(d.payments),
		ledger:    len(d.ledger),
	}
}

// Store is a mutex-guarded TransactionStore. Units of work run serially against a copy of the
// data; on success only the rows they touched are merged back, so writes made on the root store
// in the meantime survive.
type Store struct {
	mu      *sync.RWMutex
	txMu    *sync.Mutex
	data    *dataset
	root    *Store   // set on unit-of-work stores
	journal *journal // set on unit-of-work stores
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		mu:   &sync.RWMutex{},
		txMu: &sync.Mutex{},
		data: newDataset(),
	}
}

var _ portsrepo.TransactionStore = (*Store)(nil)

// AddAccount inserts or replaces an account.
func (s *Store) AddAccount(a domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{a.WorkplaceID, a.AccountID}
	s.data.accounts[k] = a
	if s.journal != nil {
		s.journal.accounts[k] = struct{}{}
	}
}

// AddSale inserts or replaces a sale.
func (s *Store) AddSale(sale domain.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sale.PaymentStatus == "" {
		sale.PaymentStatus = domain.PaymentStatusFor(sale.Amount, sale.AmountPaid)
	}
	k := key{sale.WorkplaceID, sale.SaleID}
	s.data.sales[k] = sale
	if s.journal != nil {
		s.journal.sales[k] = struct{}{}
	}
}

// AddPurchase inserts or replaces a purchase.
func (s *Store) AddPurchase(p domain.Purchase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{p.WorkplaceID, p.PurchaseID}
	s.data.purchases[k] = p
	if s.journal != nil {
		s.journal.purchases[k] = struct{}{}
	}
}

// LedgerEntries returns the snapshot lines recorded for a party.
func (s *Store) LedgerEntries(workplaceID, partyID string) []domain.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.LedgerEntry
	for _, e := range s.data.ledger {
		if e.WorkplaceID == workplaceID && e.PartyID == partyID {
			out = append(out, e)
		}
	}
	return out
}

// GetAccount returns the account or apperrors.ErrNotFound.
func (s *Store) GetAccount(ctx context.Context, workplaceID, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.data.accounts[key{workplaceID, accountID}]
	if !ok {
		return nil, apperrors.NotFound("account", accountID)
	}
	return &a, nil
}

// ListAccounts returns the workplace accounts ordered by ID.
func (s *Store) ListAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Account{}
	for k, a := range s.data.accounts {
		if k.workplaceID == workplaceID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

// GetSale returns the sale or apperrors.ErrNotFound.
func (s *Store) GetSale(ctx context.Context, workplaceID, saleID string) (*domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sale, ok := s.data.sales[key{workplaceID, saleID}]
	if !ok {
		return nil, apperrors.NotFound("sale", saleID)
	}
	return &sale, nil
}

// GetSaleForUpdate needs no extra locking: units of work are already serialised.
func (s *Store) GetSaleForUpdate(ctx context.Context, workplaceID, saleID string) (*domain.Sale, error) {
	return s.GetSale(ctx, workplaceID, saleID)
}

// ListSales returns matching sales ordered by sale date and ID.
func (s *Store) ListSales(ctx context.Context, workplaceID string, filter domain.TransactionFilter) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Sale{}
	for k, sale := range s.data.sales {
		if k.workplaceID != workplaceID || (filter.PartyID != "" && sale.PartyID != filter.PartyID) {
			continue
		}
		if accounting.InRange(sale.SaleDate, filter.From, filter.To) {
			out = append(out, sale)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SaleDate.Equal(out[j].SaleDate) {
			return out[i].SaleDate.Before(out[j].SaleDate)
		}
		return out[i].SaleID < out[j].SaleID
	})
	return out, nil
}

// ListPurchases returns matching purchases ordered by purchase date and ID.
func (s *Store) ListPurchases(ctx context.Context, workplaceID string, filter domain.TransactionFilter) ([]domain.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Purchase{}
	for k, p := range s.data.purchases {
		if k.workplaceID != workplaceID || (filter.PartyID != "" && p.PartyID != filter.PartyID) {
			continue
		}
		if accounting.InRange(p.PurchaseDate, filter.From, filter.To) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].PurchaseDate.Before(out[j].PurchaseDate)
		}
		return out[i].PurchaseID < out[j].PurchaseID
	})
	return out, nil
}

// ListPayments returns matching cash entries in insertion order.
func (s *Store) ListPayments(ctx context.Context, workplaceID string, filter domain.TransactionFilter) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Payment{}
	for _, p := range s.data.payments {
		if p.WorkplaceID != workplaceID || (filter.PartyID != "" && p.PartyID != filter.PartyID) {
			continue
		}
		if accounting.InRange(p.EntryDate, filter.From, filter.To) {
			out = append(out, p)
		}
	}
	return out, nil
}

// AppendPayment adds a cash entry. Used directly it also seeds fixtures.
func (s *Store) AppendPayment(ctx context.Context, payment domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.data.payments {
		if p.WorkplaceID == payment.WorkplaceID && p.CashEntryID == payment.CashEntryID {
			return apperrors.ErrDuplicate
		}
	}
	s.data.payments = append(s.data.payments, payment)
	return nil
}

// AppendLedgerEntry records a ledger snapshot line.
func (s *Store) AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.ledger = append(s.data.ledger, entry)
	return nil
}

// UpdateSale validates and applies a sale patch.
func (s *Store) UpdateSale(ctx context.Context, workplaceID, saleID string, patch domain.SalePatch) error {
	if err := patch.Validate(); err != nil {
		return apperrors.Validation("sale", saleID, "", err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{workplaceID, saleID}
	sale, ok := s.data.sales[k]
	if !ok {
		return apperrors.NotFound("sale", saleID)
	}
	patch.Apply(&sale)
	s.data.sales[k] = sale
	if s.journal != nil {
		s.journal.sales[k] = struct{}{}
	}
	return nil
}

// UpdateAccount validates and applies an account balance patch.
func (s *Store) UpdateAccount(ctx context.Context, workplaceID, accountID string, patch domain.AccountPatch) error {
	if err := patch.Validate(); err != nil {
		return apperrors.Validation("account", accountID, "", err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{workplaceID, accountID}
	account, ok := s.data.accounts[k]
	if !ok {
		return apperrors.NotFound("account", accountID)
	}
	patch.Apply(&account)
	s.data.accounts[k] = account
	if s.journal != nil {
		s.journal.accounts[k] = struct{}{}
	}
	return nil
}

// RunInTx runs fn against a private copy of the data and merges the rows fn touched into the
// live data when fn succeeds. Nested calls join the surrounding unit of work.
func (s *Store) RunInTx(ctx context.Context, fn func(tx portsrepo.TransactionStore) error) error {
	if s.root != nil {
		return fn(s)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	data := s.data.clone()
	s.mu.RUnlock()
	tx := &Store{mu: &sync.RWMutex{}, txMu: s.txMu, data: data, root: s, journal: newJournal(data)}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	return s.commit(tx)
}

// commit merges a finished unit of work. Cash entries appended on both sides with the same ID
// fail the whole commit with ErrDuplicate.
func (s *Store) commit(tx *Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j := tx.journal
	newPayments := tx.data.payments[j.payments:]
	for _, p := range newPayments {
		for _, existing := range s.data.payments {
			if existing.WorkplaceID == p.WorkplaceID && existing.CashEntryID == p.CashEntryID {
				return apperrors.ErrDuplicate
			}
		}
	}

	for k := range j.accounts {
		s.data.accounts[k] = tx.data.accounts[k]
	}
	for k := range j.sales {
		s.data.sales[k] = tx.data.sales[k]
	}
	for k := range j.purchases {
		s.data.purchases[k] = tx.data.purchases[k]
	}
	s.data.payments = append(s.data.payments, newPayments...)
	s.data.ledger = append(s.data.ledger, tx.data.ledger[j.ledger:]...)
	return nil
}
