package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/seido-app/backend/internal/scheduling"
)

func TestWriteDomainErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("%w: slot list must not be empty", scheduling.ErrValidation), http.StatusBadRequest, "VALIDATION_ERROR"},
		{scheduling.ErrUnauthorized, http.StatusForbidden, "FORBIDDEN"},
		{scheduling.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{pgx.ErrNoRows, http.StatusNotFound, "NOT_FOUND"},
		{scheduling.ErrAlreadyResolved, http.StatusConflict, "ALREADY_RESOLVED"},
		{fmt.Errorf("%w: intervention is already scheduled", scheduling.ErrConflict), http.StatusConflict, "CONFLICT"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		writeDomainError(c, tc.err)

		if w.Code != tc.wantStatus {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.wantStatus, w.Code)
		}
		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Error.Code != tc.wantCode {
			t.Fatalf("%v: expected code %s, got %s", tc.err, tc.wantCode, body.Error.Code)
		}
	}
}
