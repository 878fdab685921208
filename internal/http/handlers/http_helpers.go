package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/hplussport-catalog/internal/events"
	"github.com/rogerio-castellano/hplussport-catalog/internal/models"
	"github.com/rogerio-castellano/hplussport-catalog/internal/repo"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// serverError logs err and answers 500 with a short message.
func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	appLog.Errorf(err, "%s %s: %s", r.Method, r.URL.Path, msg)
	http.Error(w, msg, http.StatusInternalServerError)
}

func respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		appLog.Errorf(err, "%s %s: could not write response", r.Method, r.URL.Path)
	}
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// acquire opens the request's database session. When it fails the error
// response has already been written.
func acquire(w http.ResponseWriter, r *http.Request) (repo.Session, bool) {
	sess, err := store.Acquire(r.Context())
	if err != nil {
		serverError(w, r, "could not open database session", err)
		return nil, false
	}
	return sess, true
}

func release(sess repo.Session) {
	if err := sess.Release(); err != nil {
		appLog.Warnf("could not release database session: %v", err)
	}
}

// publish sends a product event. Failures are logged and do not affect the
// response.
func publish(r *http.Request, t events.Type, p models.Product) {
	ev := events.NewProductEvent(t, p)
	if err := publisher.Publish(r.Context(), ev); err != nil {
		appLog.Errorf(err, "could not publish %s event for product %d", t, p.ID)
	}
}
