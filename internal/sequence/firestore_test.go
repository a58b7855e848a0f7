package sequence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1, "#00001"},
		{42, "#00042"},
		{12345, "#12345"},
		{123456, "#123456"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.n))
	}
}

func TestCurrentValueMissingDocument(t *testing.T) {
	n, err := currentValue(nil, status.Error(codes.NotFound, "no such document"))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = currentValue(nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCurrentValuePropagatesErrors(t *testing.T) {
	unavailable := status.Error(codes.Unavailable, "backend unavailable")
	_, err := currentValue(nil, unavailable)
	assert.True(t, errors.Is(err, unavailable))
}

func ExampleFormat() {
	fmt.Println(Format(7))
	// Output: #00007
}
