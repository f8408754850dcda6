package db

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsNonUniqueErr(t *testing.T) {
	assert.True(t, IsNonUniqueErr(&pq.Error{Code: "23505"}))
	assert.False(t, IsNonUniqueErr(&pq.Error{Code: "23503"}))
	assert.False(t, IsNonUniqueErr(errors.New("plain error")))
	assert.False(t, IsNonUniqueErr(nil))
}
