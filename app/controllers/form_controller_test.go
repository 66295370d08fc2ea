package controllers

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/shashiranjanraj/paladar/app/models"
	"github.com/shashiranjanraj/paladar/app/repositories"
	"github.com/shashiranjanraj/paladar/app/views"
	"github.com/shashiranjanraj/paladar/pkg/store"
	"github.com/shashiranjanraj/paladar/pkg/testkit"
)

type FormSuite struct {
	suite.Suite
	ctx      context.Context
	users    *repositories.UserRepository
	orders   *repositories.OrderRepository
	forms    *FormController
	renderer *views.Renderer
	st       *FormState
}

func (s *FormSuite) SetupTest() {
	s.ctx = context.Background()
	gw := testkit.OpenStore(s.T())
	s.users = repositories.NewUserRepository(gw, nil)
	s.orders = repositories.NewOrderRepository(gw, nil)
	s.renderer = views.NewRenderer(s.users, s.orders)
	s.forms = NewFormController(s.users, s.orders, s.renderer)
	s.st = &FormState{SessionID: "s1"}
}

func TestFormSuite(t *testing.T) {
	suite.Run(t, new(FormSuite))
}

func (s *FormSuite) TestAddUserTrimsAndRefreshes() {
	snap, err := s.forms.SubmitUser(s.ctx, s.st, UserInput{Name: "  Ana ", Description: " vegetariana "})
	s.Require().NoError(err)

	s.Require().Len(snap.Users.Rows, 1)
	s.Equal("Ana", snap.Users.Rows[0].Name)
	s.Equal("vegetariana", snap.Users.Rows[0].Description)
	s.Equal(Idle, s.st.UserMode())
	s.Equal("Agregar Usuario", s.st.UserButton())
	s.Equal(UserFields{}, s.st.User)
}

func (s *FormSuite) TestBlankNameIsRejectedBeforeStore() {
	_, err := s.forms.SubmitUser(s.ctx, s.st, UserInput{Name: "   "})

	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal("Nombre requerido", verr.Message)

	users, err := s.users.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *FormSuite) TestBlankDishIsRejected() {
	_, err := s.forms.SubmitOrder(s.ctx, s.st, OrderInput{Dish: ""})

	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal("Plato requerido", verr.Message)
}

func (s *FormSuite) TestEditThenSaveKeepsID() {
	id, err := s.users.Add(s.ctx, "Ana", "")
	s.Require().NoError(err)

	s.Require().NoError(s.forms.StartUserEdit(s.ctx, s.st, id))
	s.Equal(Editing, s.st.UserMode())
	s.Equal("Guardar cambios", s.st.UserButton())
	s.Equal("Ana", s.st.User.Name)

	snap, err := s.forms.SubmitUser(s.ctx, s.st, UserInput{Name: "Ana María"})
	s.Require().NoError(err)
	s.Require().Len(snap.Users.Rows, 1)
	s.Equal(id, snap.Users.Rows[0].ID)
	s.Equal("Ana María", snap.Users.Rows[0].Name)
	s.Equal(Idle, s.st.UserMode())
}

func (s *FormSuite) TestSaveAfterRecordVanishedResetsToIdle() {
	id, err := s.users.Add(s.ctx, "Ana", "")
	s.Require().NoError(err)
	s.Require().NoError(s.forms.StartUserEdit(s.ctx, s.st, id))
	s.Require().NoError(s.users.Remove(s.ctx, id))

	_, err = s.forms.SubmitUser(s.ctx, s.st, UserInput{Name: "Otra"})
	s.ErrorIs(err, store.ErrNotFound)
	s.Equal(Idle, s.st.UserMode())

	users, err := s.users.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *FormSuite) TestRefreshFailureAfterSaveStillCommits() {
	id, err := s.users.Add(s.ctx, "Ana", "")
	s.Require().NoError(err)
	lister := &flakyUsers{UserRepository: s.users, failures: 1}
	forms := NewFormController(s.users, s.orders, views.NewRenderer(lister, s.orders))

	s.Require().NoError(forms.StartUserEdit(s.ctx, s.st, id))
	_, err = forms.SubmitUser(s.ctx, s.st, UserInput{Name: "Ana María"})

	var rerr *RefreshError
	s.Require().ErrorAs(err, &rerr)
	s.ErrorIs(err, errListFailed)
	s.Equal(Idle, s.st.UserMode())

	users, err := s.users.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal("Ana María", users[0].Name)
}

func (s *FormSuite) TestStartEditMissing() {
	s.ErrorIs(s.forms.StartOrderEdit(s.ctx, s.st, 99), store.ErrNotFound)
	s.Equal(Idle, s.st.OrderMode())
}

func (s *FormSuite) TestOrderSelectorParsing() {
	uid, err := s.users.Add(s.ctx, "Ana", "")
	s.Require().NoError(err)

	snap, err := s.forms.SubmitOrder(s.ctx, s.st, OrderInput{Dish: "Paella", UserID: strconv.FormatUint(uint64(uid), 10)})
	s.Require().NoError(err)
	s.Require().Len(snap.Orders.Rows, 1)
	s.Equal(uid, snap.Orders.Rows[0].UserID)
	s.Equal("Ana", snap.Orders.Rows[0].Owner)

	snap, err = s.forms.SubmitOrder(s.ctx, s.st, OrderInput{Dish: "Sopa", UserID: ""})
	s.Require().NoError(err)
	s.Require().Len(snap.Orders.Rows, 2)
	s.Zero(snap.Orders.Rows[1].UserID)
	s.Equal(views.NoOwner, snap.Orders.Rows[1].Owner)
}

func (s *FormSuite) TestOversizedSelectorKeepsOrdersReadable() {
	_, err := s.forms.SubmitOrder(s.ctx, s.st, OrderInput{Dish: "Flan", UserID: "18446744073709551615"})
	s.Require().NoError(err)

	snap, err := s.forms.SubmitOrder(s.ctx, s.st, OrderInput{Dish: "Sopa"})
	s.Require().NoError(err)
	s.Require().Len(snap.Orders.Rows, 2)
	s.Zero(snap.Orders.Rows[0].UserID)
	s.Equal(views.NoOwner, snap.Orders.Rows[0].Owner)

	_, err = s.renderer.Refresh(s.ctx)
	s.NoError(err)
}

func (s *FormSuite) TestEditOrderCarriesOwner() {
	uid, err := s.users.Add(s.ctx, "Ana", "")
	s.Require().NoError(err)
	oid, err := s.orders.Add(s.ctx, "Paella", "", uid)
	s.Require().NoError(err)

	s.Require().NoError(s.forms.StartOrderEdit(s.ctx, s.st, oid))
	s.Equal(OrderFields{Dish: "Paella", UserID: uid}, s.st.Order)
	s.Equal("Guardar cambios", s.st.OrderButton())

	_, err = s.forms.SubmitOrder(s.ctx, s.st, OrderInput{Dish: "Paella valenciana", UserID: "0"})
	s.Require().NoError(err)
	o, err := s.orders.Get(s.ctx, oid)
	s.Require().NoError(err)
	s.Zero(o.UserID)
	s.Equal("Paella valenciana", o.Dish)
}

func (s *FormSuite) TestDeleteUserLeavesOrdersWithFallback() {
	uid, err := s.users.Add(s.ctx, "Ana", "")
	s.Require().NoError(err)
	_, err = s.orders.Add(s.ctx, "Paella", "", uid)
	s.Require().NoError(err)

	snap, err := s.forms.DeleteUser(s.ctx, uid)
	s.Require().NoError(err)
	s.Equal(views.NoUsers, snap.Users.Empty)
	s.Require().Len(snap.Orders.Rows, 1)
	s.Equal(views.NoOwner, snap.Orders.Rows[0].Owner)

	snap, err = s.forms.DeleteOrder(s.ctx, snap.Orders.Rows[0].ID)
	s.Require().NoError(err)
	s.Empty(snap.Orders.Rows)
}

func TestParseUserID(t *testing.T) {
	assert.Equal(t, uint(7), ParseUserID("7"))
	assert.Equal(t, uint(7), ParseUserID(" 7 "))
	assert.Zero(t, ParseUserID(""))
	assert.Zero(t, ParseUserID("abc"))
	assert.Zero(t, ParseUserID("-3"))
	assert.Zero(t, ParseUserID("9223372036854775808"))
	assert.Zero(t, ParseUserID("18446744073709551615"))
	assert.Equal(t, uint(9223372036854775807), ParseUserID("9223372036854775807"))
}

var errListFailed = errors.New("list failed")

// flakyUsers fails the next `failures` List calls.
type flakyUsers struct {
	*repositories.UserRepository
	failures int
}

func (f *flakyUsers) List(ctx context.Context) ([]models.User, error) {
	if f.failures > 0 {
		f.failures--
		return nil, errListFailed
	}
	return f.UserRepository.List(ctx)
}

// blockingUsers holds Add open until release is closed.
type blockingUsers struct {
	Users
	entered chan struct{}
	release chan struct{}
}

func (b *blockingUsers) Add(context.Context, string, string) (uint, error) {
	close(b.entered)
	<-b.release
	return 0, errors.New("boom")
}

func TestSecondSubmitWhileInFlightIsRejected(t *testing.T) {
	users := &blockingUsers{entered: make(chan struct{}), release: make(chan struct{})}
	forms := NewFormController(users, nil, nil)
	st := &FormState{SessionID: "s1"}

	done := make(chan error, 1)
	go func() {
		_, err := forms.SubmitUser(context.Background(), &FormState{SessionID: "s1"}, UserInput{Name: "Ana"})
		done <- err
	}()
	<-users.entered

	_, err := forms.SubmitUser(context.Background(), st, UserInput{Name: "Ana"})
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	// another session is not blocked by the first
	release, err := forms.acquire("s2", "users")
	require.NoError(t, err)
	release()

	close(users.release)
	assert.EqualError(t, <-done, "boom")

	release, err = forms.acquire("s1", "users")
	require.NoError(t, err)
	release()
}

var _ Users = (*repositories.UserRepository)(nil)
var _ Orders = (*repositories.OrderRepository)(nil)
