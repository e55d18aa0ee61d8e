package apperrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("absent").HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, Validation("invalide").HTTPStatus())
	assert.Equal(t, http.StatusConflict, Conflict("occupé").HTTPStatus())
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("deleting product: %w", Conflict("référencé"))

	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(fmt.Errorf("autre"), KindConflict))
}
