package controllers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/shashiranjanraj/paladar/app/models"
	"github.com/shashiranjanraj/paladar/app/views"
	"github.com/shashiranjanraj/paladar/pkg/store"
	"github.com/shashiranjanraj/paladar/pkg/validate"
)

// ErrSubmitInFlight rejects a submit while the same form of the same session
// is still being saved.
var ErrSubmitInFlight = errors.New("controllers: submit already in flight")

// ValidationError is a blocking message shown to the user. No storage call
// was made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// RefreshError means the write was committed but the lists could not be read
// back afterwards. The form state already reflects the committed write.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string { return "controllers: refresh after write: " + e.Err.Error() }
func (e *RefreshError) Unwrap() error { return e.Err }

// Mode is the state of one form.
type Mode int

const (
	Idle Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "idle"
}

const (
	addUserLabel  = "Agregar Usuario"
	addOrderLabel = "Agregar Pedido"
	saveLabel     = "Guardar cambios"
)

type UserFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type OrderFields struct {
	Dish        string `json:"dish"`
	Description string `json:"description"`
	UserID      uint   `json:"user_id"`
}

// FormState is the per-session state of both forms. An edit id of 0 means
// the form is adding; store ids start at 1.
type FormState struct {
	SessionID   string      `json:"-"`
	UserEditID  uint        `json:"user_edit_id"`
	OrderEditID uint        `json:"order_edit_id"`
	User        UserFields  `json:"user"`
	Order       OrderFields `json:"order"`
}

func (s *FormState) UserMode() Mode {
	if s.UserEditID != 0 {
		return Editing
	}
	return Idle
}

func (s *FormState) OrderMode() Mode {
	if s.OrderEditID != 0 {
		return Editing
	}
	return Idle
}

func (s *FormState) UserButton() string {
	if s.UserMode() == Editing {
		return saveLabel
	}
	return addUserLabel
}

func (s *FormState) OrderButton() string {
	if s.OrderMode() == Editing {
		return saveLabel
	}
	return addOrderLabel
}

func (s *FormState) resetUser() {
	s.UserEditID = 0
	s.User = UserFields{}
}

func (s *FormState) resetOrder() {
	s.OrderEditID = 0
	s.Order = OrderFields{}
}

// UserInput is the user form as submitted.
type UserInput struct {
	Name        string `form:"nombre"      json:"name"        validate:"required,max=255"`
	Description string `form:"descripcion" json:"description"`
}

// OrderInput is the order form as submitted. UserID is the raw selector value.
type OrderInput struct {
	Dish        string `form:"plato"       json:"dish"        validate:"required,max=255"`
	Description string `form:"descripcion" json:"description"`
	UserID      string `form:"usuarioId"   json:"user_id"`
}

var (
	userMessages = validate.Messages{
		"name.required": "Nombre requerido",
		"name.max":      "Nombre demasiado largo",
	}
	orderMessages = validate.Messages{
		"dish.required": "Plato requerido",
		"dish.max":      "Plato demasiado largo",
	}
)

// Normalize trims the fields and checks them. A failure is a *ValidationError.
func (in *UserInput) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return validationError(validate.Struct(in, userMessages), "name")
}

func (in *OrderInput) Normalize() error {
	in.Dish = strings.TrimSpace(in.Dish)
	in.Description = strings.TrimSpace(in.Description)
	return validationError(validate.Struct(in, orderMessages), "dish")
}

// ParseUserID reads the owner selector. Empty or invalid input means no
// owner and yields 0, and so does anything above models.MaxID.
func ParseUserID(raw string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 63)
	if err != nil {
		return 0
	}
	return uint(n)
}

// Users and Orders are the repository operations the form controller uses.
type Users interface {
	Add(ctx context.Context, name, description string) (uint, error)
	Get(ctx context.Context, id uint) (models.User, error)
	Update(ctx context.Context, id uint, name, description string) error
	Remove(ctx context.Context, id uint) error
}

type Orders interface {
	Add(ctx context.Context, dish, description string, userID uint) (uint, error)
	Get(ctx context.Context, id uint) (models.Order, error)
	Update(ctx context.Context, id uint, dish, description string, userID uint) error
	Remove(ctx context.Context, id uint) error
}

// FormController drives both forms: validation, add-or-save, edit mode and
// the refresh that follows every successful change.
type FormController struct {
	users    Users
	orders   Orders
	renderer *views.Renderer

	mu       sync.Mutex
	inflight map[string]bool
}

func NewFormController(users Users, orders Orders, renderer *views.Renderer) *FormController {
	return &FormController{
		users:    users,
		orders:   orders,
		renderer: renderer,
		inflight: map[string]bool{},
	}
}

// acquire takes the in-flight slot for one form of one session.
func (c *FormController) acquire(sessionID, form string) (func(), error) {
	key := sessionID + ":" + form
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[key] {
		return nil, ErrSubmitInFlight
	}
	c.inflight[key] = true
	return func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
	}, nil
}

// refresh re-reads both lists after a committed write.
func (c *FormController) refresh(ctx context.Context) (views.Snapshot, error) {
	snap, err := c.renderer.Refresh(ctx)
	if err != nil {
		return views.Snapshot{}, &RefreshError{Err: err}
	}
	return snap, nil
}

func validationError(errs map[string]string, field string) error {
	if msg, ok := errs[field]; ok {
		return &ValidationError{Field: field, Message: msg}
	}
	return nil
}

// SubmitUser adds a user, or saves the one being edited.
func (c *FormController) SubmitUser(ctx context.Context, st *FormState, in UserInput) (views.Snapshot, error) {
	if err := in.Normalize(); err != nil {
		return views.Snapshot{}, err
	}

	release, err := c.acquire(st.SessionID, "users")
	if err != nil {
		return views.Snapshot{}, err
	}
	defer release()

	if st.UserEditID != 0 {
		err = c.users.Update(ctx, st.UserEditID, in.Name, in.Description)
	} else {
		_, err = c.users.Add(ctx, in.Name, in.Description)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			st.resetUser()
		}
		return views.Snapshot{}, err
	}

	st.resetUser()
	return c.refresh(ctx)
}

// SubmitOrder adds an order, or saves the one being edited.
func (c *FormController) SubmitOrder(ctx context.Context, st *FormState, in OrderInput) (views.Snapshot, error) {
	if err := in.Normalize(); err != nil {
		return views.Snapshot{}, err
	}
	userID := ParseUserID(in.UserID)

	release, err := c.acquire(st.SessionID, "orders")
	if err != nil {
		return views.Snapshot{}, err
	}
	defer release()

	if st.OrderEditID != 0 {
		err = c.orders.Update(ctx, st.OrderEditID, in.Dish, in.Description, userID)
	} else {
		_, err = c.orders.Add(ctx, in.Dish, in.Description, userID)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			st.resetOrder()
		}
		return views.Snapshot{}, err
	}

	st.resetOrder()
	return c.refresh(ctx)
}

// StartUserEdit loads the user into the form and switches it to Editing.
func (c *FormController) StartUserEdit(ctx context.Context, st *FormState, id uint) error {
	u, err := c.users.Get(ctx, id)
	if err != nil {
		return err
	}
	st.UserEditID = u.ID
	st.User = UserFields{Name: u.Name, Description: u.Description}
	return nil
}

// StartOrderEdit loads the order into the form and switches it to Editing.
func (c *FormController) StartOrderEdit(ctx context.Context, st *FormState, id uint) error {
	o, err := c.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	st.OrderEditID = o.ID
	st.Order = OrderFields{Dish: o.Dish, Description: o.Description, UserID: o.UserID}
	return nil
}

// DeleteUser removes the user and refreshes. Orders that named it fall back to
// "Sin usuario" on the next render.
func (c *FormController) DeleteUser(ctx context.Context, id uint) (views.Snapshot, error) {
	if err := c.users.Remove(ctx, id); err != nil {
		return views.Snapshot{}, err
	}
	return c.refresh(ctx)
}

func (c *FormController) DeleteOrder(ctx context.Context, id uint) (views.Snapshot, error) {
	if err := c.orders.Remove(ctx, id); err != nil {
		return views.Snapshot{}, err
	}
	return c.refresh(ctx)
}
