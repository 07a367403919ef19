package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"filasling/internal/entities"
	"filasling/internal/repositories"
	apperrors "filasling/pkg/errors"
	"filasling/pkg/eventbus"
)

// fakeClock выдаёт строго возрастающее время.
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{cur: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

// fakeTxManager запускает fn без транзакции; при ошибке откатывает хранилища.
type fakeTxManager struct {
	snapshots []interface{ snapshot() func() }
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	restores := make([]func(), 0, len(m.snapshots))
	for _, s := range m.snapshots {
		restores = append(restores, s.snapshot())
	}
	if err := fn(nil); err != nil {
		for _, r := range restores {
			r()
		}
		return err
	}
	return nil
}

// store - общее состояние фейковых репозиториев.
type store struct {
	mu         sync.Mutex
	clock      *fakeClock
	accounts   map[string]entities.Account
	atendentes map[string]entities.Atendente
	etapas     map[string]entities.Etapa
	tickets    map[string]entities.Ticket
}

func newStore() *store {
	return &store{
		clock:      newFakeClock(),
		accounts:   map[string]entities.Account{},
		atendentes: map[string]entities.Atendente{},
		etapas:     map[string]entities.Etapa{},
		tickets:    map[string]entities.Ticket{},
	}
}

func (s *store) snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := copyMap(s.accounts)
	at := copyMap(s.atendentes)
	et := copyMap(s.etapas)
	tk := copyMap(s.tickets)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.accounts, s.atendentes, s.etapas, s.tickets = acc, at, et, tk
	}
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *store) txManager() repositories.TxManagerInterface {
	return &fakeTxManager{snapshots: []interface{ snapshot() func() }{s}}
}

// --- accounts ---

type fakeAccountRepo struct{ s *store }

func (r *fakeAccountRepo) FindByID(_ context.Context, _ pgx.Tx, id string) (*entities.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (r *fakeAccountRepo) FindByUsuario(_ context.Context, usuario string) (*entities.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if strings.EqualFold(a.Usuario, usuario) {
			return &a, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeAccountRepo) UsuarioExists(_ context.Context, _ pgx.Tx, usuario string, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if strings.EqualFold(a.Usuario, usuario) && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAccountRepo) Create(_ context.Context, _ pgx.Tx, acc entities.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.clock.Now()
	acc.CreatedAt, acc.UpdatedAt = now, now
	r.s.accounts[acc.ID] = acc
	return nil
}

func (r *fakeAccountRepo) UpdateSenha(_ context.Context, _ pgx.Tx, id string, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	a.Senha = hash
	r.s.accounts[id] = a
	return nil
}

func (r *fakeAccountRepo) UpdateFlags(_ context.Context, _ pgx.Tx, id string, usuario *string, ativo *bool, admin *bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if usuario != nil {
		a.Usuario = *usuario
	}
	if ativo != nil {
		a.Ativo = *ativo
	}
	if admin != nil {
		a.Admin = *admin
	}
	r.s.accounts[id] = a
	return nil
}

func (r *fakeAccountRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.accounts)), nil
}

// --- atendentes ---

type fakeAtendenteRepo struct {
	s       *store
	failNew error
}

func (r *fakeAtendenteRepo) withAdmin(a entities.Atendente) entities.Atendente {
	a.Admin = r.s.accounts[a.ID].Admin
	return a
}

func (r *fakeAtendenteRepo) FindAll(_ context.Context) ([]entities.Atendente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entities.Atendente, 0, len(r.s.atendentes))
	for _, a := range r.s.atendentes {
		out = append(out, r.withAdmin(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *fakeAtendenteRepo) FindByID(_ context.Context, _ pgx.Tx, id string) (*entities.Atendente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.atendentes[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	a = r.withAdmin(a)
	return &a, nil
}

func (r *fakeAtendenteRepo) EmailExists(_ context.Context, _ pgx.Tx, email string, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.atendentes {
		if strings.EqualFold(a.Email, email) && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAtendenteRepo) Create(_ context.Context, _ pgx.Tx, a entities.Atendente) error {
	if r.failNew != nil {
		return r.failNew
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.clock.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.atendentes[a.ID] = a
	return nil
}

func (r *fakeAtendenteRepo) Update(_ context.Context, _ pgx.Tx, id string, patch entities.AtendentePatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.atendentes[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if patch.Nome != nil {
		a.Nome = *patch.Nome
	}
	if patch.Email != nil {
		a.Email = *patch.Email
	}
	if patch.URLImagem != nil {
		a.URLImagem = patch.URLImagem.Ptr()
	}
	if patch.Ativo != nil {
		a.Ativo = *patch.Ativo
	}
	a.UpdatedAt = r.s.clock.Now()
	r.s.atendentes[id] = a
	return nil
}

// --- etapas ---

type fakeEtapaRepo struct{ s *store }

func (r *fakeEtapaRepo) FindAll(_ context.Context) ([]entities.Etapa, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entities.Etapa, 0, len(r.s.etapas))
	for _, e := range r.s.etapas {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

func (r *fakeEtapaRepo) FindByID(_ context.Context, _ pgx.Tx, id string) (*entities.Etapa, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.etapas[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEtapaRepo) LockByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Etapa, error) {
	return r.FindByID(ctx, tx, id)
}

func (r *fakeEtapaRepo) NumeroExists(_ context.Context, _ pgx.Tx, numero int, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.etapas {
		if e.Numero == numero && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEtapaRepo) Create(_ context.Context, _ pgx.Tx, e entities.Etapa) (*entities.Etapa, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.etapas {
		if other.Numero == e.Numero {
			return nil, apperrors.ErrConflict
		}
	}
	now := r.s.clock.Now()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.etapas[e.ID] = e
	return &e, nil
}

func (r *fakeEtapaRepo) Update(_ context.Context, _ pgx.Tx, id string, patch entities.EtapaPatch) (*entities.Etapa, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.etapas[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if patch.Nome != nil {
		e.Nome = *patch.Nome
	}
	if patch.Numero != nil {
		e.Numero = *patch.Numero
	}
	if patch.NumeroSistema != nil {
		e.NumeroSistema = patch.NumeroSistema.Ptr()
	}
	if patch.Cor != nil {
		e.Cor = *patch.Cor
	}
	e.UpdatedAt = r.s.clock.Now()
	r.s.etapas[id] = e
	return &e, nil
}

func (r *fakeEtapaRepo) Delete(_ context.Context, _ pgx.Tx, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.etapas[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.s.etapas, id)
	return nil
}

// --- tickets ---

// fakeTicketRepo повторяет LEFT JOIN с etapas и atendentes на чтении.
type fakeTicketRepo struct{ s *store }

func (r *fakeTicketRepo) joined(t entities.Ticket) entities.Ticket {
	t.EtapaNome, t.EtapaCor = nil, nil
	t.AtendenteNomeAtual, t.AtendenteEmailAtual, t.AtendenteImagemAtual = nil, nil, nil
	for _, e := range r.s.etapas {
		if e.Numero == t.EtapaNumero {
			nome, cor := e.Nome, e.Cor
			t.EtapaNome, t.EtapaCor = &nome, &cor
		}
	}
	if t.AtendenteID != nil {
		if a, ok := r.s.atendentes[*t.AtendenteID]; ok {
			nome, email := a.Nome, a.Email
			t.AtendenteNomeAtual, t.AtendenteEmailAtual, t.AtendenteImagemAtual = &nome, &email, a.URLImagem
		}
	}
	return t
}

func (r *fakeTicketRepo) FindAll(_ context.Context, filter entities.TicketFilter) ([]entities.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entities.Ticket, 0, len(r.s.tickets))
	for _, t := range r.s.tickets {
		if filter.EtapaNumero != nil && t.EtapaNumero != *filter.EtapaNumero {
			continue
		}
		if filter.AtendenteID != nil && (t.AtendenteID == nil || *t.AtendenteID != *filter.AtendenteID) {
			continue
		}
		out = append(out, r.joined(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EtapaNumero != out[j].EtapaNumero {
			return out[i].EtapaNumero < out[j].EtapaNumero
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeTicketRepo) FindByID(_ context.Context, _ pgx.Tx, id string) (*entities.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	t = r.joined(t)
	return &t, nil
}

func (r *fakeTicketRepo) LockByID(_ context.Context, _ pgx.Tx, id string) (*entities.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTicketRepo) Create(_ context.Context, _ pgx.Tx, t entities.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.clock.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	r.s.tickets[t.ID] = t
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, _ pgx.Tx, id string, patch entities.TicketPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if patch.Nome != nil {
		t.Nome = *patch.Nome
	}
	if patch.Motivo != nil {
		t.Motivo = *patch.Motivo
	}
	if patch.Telefone != nil {
		t.Telefone = patch.Telefone.Ptr()
	}
	if patch.Setor != nil {
		t.Setor = patch.Setor.Ptr()
	}
	if patch.UserNS != nil {
		t.UserNS = patch.UserNS.Ptr()
	}
	if patch.AtendenteID != nil {
		t.AtendenteID = patch.AtendenteID.Ptr()
	}
	if patch.NomeAtendente != nil {
		t.NomeAtendente = patch.NomeAtendente.Ptr()
	}
	if patch.EmailAtendente != nil {
		t.EmailAtendente = patch.EmailAtendente.Ptr()
	}
	if patch.URLImagemAtendente != nil {
		t.URLImagemAtendente = patch.URLImagemAtendente.Ptr()
	}
	if patch.EtapaNumero != nil {
		t.EtapaNumero = *patch.EtapaNumero
	}
	if patch.NumeroSistema != nil {
		t.NumeroSistema = patch.NumeroSistema.Ptr()
	}
	now := r.s.clock.Now()
	if patch.StampSaidaEtapa1 && t.DataSaidaEtapa1 == nil {
		stamp := now
		t.DataSaidaEtapa1 = &stamp
	}
	t.UpdatedAt = now
	r.s.tickets[id] = t
	return nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, _ pgx.Tx, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tickets[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.s.tickets, id)
	return nil
}

func (r *fakeTicketRepo) CountByEtapaNumero(_ context.Context, _ pgx.Tx, numero int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, t := range r.s.tickets {
		if t.EtapaNumero == numero {
			n++
		}
	}
	return n, nil
}

// --- cache ---

type fakeCache struct {
	mu      sync.Mutex
	data    map[string]string
	counter map[string]int64
	fail    error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}, counter: map[string]int64{}}
}

var errCacheMiss = errors.New("cache: nil")

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	s, _ := value.(string)
	c.data[key] = s
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return "", c.fail
	}
	v, ok := c.data[key]
	if !ok {
		return "", errCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		delete(c.counter, k)
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return 0, c.fail
	}
	c.counter[key]++
	return c.counter[key], nil
}

func (c *fakeCache) Expire(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

// --- events ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(event eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Name())
	}
	return out
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }
