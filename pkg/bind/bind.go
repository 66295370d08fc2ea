// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/paladar/config"
	"github.com/shashiranjanraj/paladar/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 1 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || n <= 0 {
		return 1 << 20
	}
	return n
}

// JSON decodes r.Body as JSON into dest and runs validation.
// Returns (errs, nil) when there are validation failures and (nil, err) when
// the body is malformed or too large.
func JSON(r *http.Request, dest any, msgs ...validate.Messages) (map[string]string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if errs := validate.Struct(dest, msgs...); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

// Form fills dest from the request's form values using each field's `form`
// tag, then runs validation. Strings are taken as sent. A number that is
// missing or does not parse binds as zero.
func Form(r *http.Request, dest any, msgs ...validate.Messages) (map[string]string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form: %w", err)
	}

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("bind: dest must be a pointer to struct, got %T", dest)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		key := rt.Field(i).Tag.Get("form")
		if key == "" || key == "-" {
			continue
		}
		raw := r.PostForm.Get(key)
		if raw == "" {
			raw = r.Form.Get(key)
		}
		setField(rv.Field(i), raw)
	}

	if errs := validate.Struct(dest, msgs...); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

func setField(f reflect.Value, raw string) {
	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		f.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, _ := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		f.SetUint(n)
	case reflect.Bool:
		b, _ := strconv.ParseBool(raw)
		f.SetBool(b)
	}
}
