package resource

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type dish struct {
	ID   uint
	Name string
}

type dishResource struct{}

func (dishResource) ToArray(d dish) Map {
	return Map{"id": d.ID, "plato": d.Name}
}

func TestResourceRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	New[dish](dishResource{}, dish{ID: 1, Name: "Paella"}).Respond(rec, http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":1,"plato":"Paella"}}`, rec.Body.String())
}

func TestCollectionRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	CollectionOf[dish](dishResource{}, nil).WithMeta(Map{"count": 0}).Respond(rec)
	assert.JSONEq(t, `{"data":[],"meta":{"count":0}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	CollectionOf[dish](dishResource{}, []dish{{1, "Paella"}, {2, "Flan"}}).Respond(rec)
	assert.JSONEq(t, `{"data":[{"id":1,"plato":"Paella"},{"id":2,"plato":"Flan"}]}`, rec.Body.String())
}
