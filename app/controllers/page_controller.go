package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/paladar/app/views"
	"github.com/shashiranjanraj/paladar/pkg/bind"
	"github.com/shashiranjanraj/paladar/pkg/logger"
	"github.com/shashiranjanraj/paladar/pkg/session"
	"github.com/shashiranjanraj/paladar/pkg/store"
)

const (
	formKey     = "forms"
	alertFlash  = "alert"
	noticeFlash = "notice"
)

// PageController serves the single HTML page. Every POST ends in a 303 back
// to "/" so a reload never resubmits.
type PageController struct {
	forms    *FormController
	renderer *views.Renderer
}

func NewPageController(forms *FormController, renderer *views.Renderer) *PageController {
	return &PageController{forms: forms, renderer: renderer}
}

func loadState(sess *session.Session) *FormState {
	st := &FormState{}
	sess.Decode(formKey, st)
	st.SessionID = sess.ID()
	return st
}

// finish stores the form state and redirects home.
func finish(w http.ResponseWriter, r *http.Request, sess *session.Session, st *FormState) {
	if err := sess.Set(formKey, st); err != nil {
		logger.WithCtx(r.Context()).Error("page: keep form state", "error", err)
	}
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("page: save session", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// alertFor turns a failed operation into the message shown above the forms.
func alertFor(r *http.Request, err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, ErrSubmitInFlight):
		return "Ya se está guardando, espere un momento"
	case errors.Is(err, store.ErrNotFound):
		return "El registro ya no existe"
	case errors.Is(err, store.ErrNotInitialized), errors.Is(err, store.ErrStorageUnavailable):
		logger.WithCtx(r.Context()).Error("page: store unavailable", "error", err)
		return "Almacenamiento no disponible"
	default:
		logger.WithCtx(r.Context()).Error("page: operation failed", "error", err)
		return "No se pudo completar la operación"
	}
}

// committed reports whether err came after the write had already succeeded.
// The page is reloaded on redirect, so only the log keeps the failure.
func committed(r *http.Request, err error) bool {
	var rerr *RefreshError
	if errors.As(err, &rerr) {
		logger.WithCtx(r.Context()).Warn("page: refresh after write failed", "error", rerr.Err)
		return true
	}
	return false
}

func pathID(r *http.Request) (uint, bool) {
	n, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 63)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// Show renders both lists and both forms.
func (c *PageController) Show(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	st := loadState(sess)

	page := views.Page{
		UserForm: views.UserForm{
			Name:        st.User.Name,
			Description: st.User.Description,
			Editing:     st.UserMode() == Editing,
			Button:      st.UserButton(),
		},
		OrderForm: views.OrderForm{
			Dish:        st.Order.Dish,
			Description: st.Order.Description,
			UserID:      st.Order.UserID,
			Editing:     st.OrderMode() == Editing,
			Button:      st.OrderButton(),
		},
		Alert:  sess.TakeFlash(alertFlash),
		Notice: sess.TakeFlash(noticeFlash),
	}

	status := http.StatusOK
	snap, err := c.renderer.Refresh(r.Context())
	if err != nil {
		page.Alert = alertFor(r, err)
		page.Users = views.UsersView{Empty: views.NoUsers}
		page.Orders = views.OrdersView{Empty: views.NoOrders}
		status = http.StatusServiceUnavailable
	} else {
		page.Snapshot = snap
	}

	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("page: save session", "error", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := views.WritePage(w, page); err != nil {
		logger.WithCtx(r.Context()).Error("page: render", "error", err)
	}
}

// StoreUser handles the user form: add in Idle, save in Editing.
func (c *PageController) StoreUser(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	st := loadState(sess)

	var in UserInput
	if _, err := bind.Form(r, &in); err != nil {
		sess.Flash(alertFlash, "Formulario inválido")
		finish(w, r, sess, st)
		return
	}

	editing := st.UserMode() == Editing
	if _, err := c.forms.SubmitUser(r.Context(), st, in); err != nil && !committed(r, err) {
		if !errors.Is(err, store.ErrNotFound) {
			// keep what was typed
			st.User = UserFields{Name: in.Name, Description: in.Description}
		}
		sess.Flash(alertFlash, alertFor(r, err))
		finish(w, r, sess, st)
		return
	}
	if editing {
		sess.Flash(noticeFlash, "Usuario actualizado")
	} else {
		sess.Flash(noticeFlash, "Usuario agregado")
	}
	finish(w, r, sess, st)
}

// StoreOrder handles the order form: add in Idle, save in Editing.
func (c *PageController) StoreOrder(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	st := loadState(sess)

	var in OrderInput
	if _, err := bind.Form(r, &in); err != nil {
		sess.Flash(alertFlash, "Formulario inválido")
		finish(w, r, sess, st)
		return
	}

	editing := st.OrderMode() == Editing
	if _, err := c.forms.SubmitOrder(r.Context(), st, in); err != nil && !committed(r, err) {
		if !errors.Is(err, store.ErrNotFound) {
			st.Order = OrderFields{Dish: in.Dish, Description: in.Description, UserID: ParseUserID(in.UserID)}
		}
		sess.Flash(alertFlash, alertFor(r, err))
		finish(w, r, sess, st)
		return
	}
	if editing {
		sess.Flash(noticeFlash, "Pedido actualizado")
	} else {
		sess.Flash(noticeFlash, "Pedido agregado")
	}
	finish(w, r, sess, st)
}

func (c *PageController) EditUser(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	st := loadState(sess)

	id, ok := pathID(r)
	if !ok {
		sess.Flash(alertFlash, alertFor(r, store.ErrNotFound))
	} else if err := c.forms.StartUserEdit(r.Context(), st, id); err != nil {
		sess.Flash(alertFlash, alertFor(r, err))
	}
	finish(w, r, sess, st)
}

func (c *PageController) EditOrder(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	st := loadState(sess)

	id, ok := pathID(r)
	if !ok {
		sess.Flash(alertFlash, alertFor(r, store.ErrNotFound))
	} else if err := c.forms.StartOrderEdit(r.Context(), st, id); err != nil {
		sess.Flash(alertFlash, alertFor(r, err))
	}
	finish(w, r, sess, st)
}

// CancelUser drops an edit in progress and empties the user form.
func (c *PageController) CancelUser(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	st := loadState(sess)
	st.resetUser()
	finish(w, r, sess, st)
}

func (c *PageController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	st := loadState(sess)
	st.resetOrder()
	finish(w, r, sess, st)
}

// DeleteUser removes a user. Deleting an id that is already gone is not an
// error.
func (c *PageController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	st := loadState(sess)

	if id, ok := pathID(r); ok {
		if _, err := c.forms.DeleteUser(r.Context(), id); err != nil && !committed(r, err) {
			sess.Flash(alertFlash, alertFor(r, err))
		} else {
			sess.Flash(noticeFlash, "Usuario eliminado")
		}
	}
	finish(w, r, sess, st)
}

func (c *PageController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	st := loadState(sess)

	if id, ok := pathID(r); ok {
		if _, err := c.forms.DeleteOrder(r.Context(), id); err != nil && !committed(r, err) {
			sess.Flash(alertFlash, alertFor(r, err))
		} else {
			sess.Flash(noticeFlash, "Pedido eliminado")
		}
	}
	finish(w, r, sess, st)
}
