package authpb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	type point struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	type payload struct {
		Name     string `json:"name"`
		Location point  `json:"location"`
	}

	in := payload{Name: "alice", Location: point{Type: "Point", Coordinates: []float64{77.2, 28.6}}}

	s, err := Encode(in)
	require.NoError(t, err)
	assert.Equal(t, "alice", s.Fields["name"].GetStringValue())

	var out payload
	require.NoError(t, Decode(s, &out))
	assert.Equal(t, in, out)
}

func TestEncode_Unsupported(t *testing.T) {
	_, err := Encode(make(chan int))
	assert.Error(t, err)

	_, err = Encode([]string{"not", "an", "object"})
	assert.Error(t, err)
}

func TestDecode_Nil(t *testing.T) {
	var c Claims
	assert.Error(t, Decode(nil, &c))
}

func TestServiceDesc(t *testing.T) {
	assert.Equal(t, "qrmoments.auth.AuthService", ServiceDesc.ServiceName)
	names := make([]string, 0, len(ServiceDesc.Methods))
	for _, m := range ServiceDesc.Methods {
		names = append(names, m.MethodName)
	}
	assert.ElementsMatch(t, []string{"Register", "Login", "ValidateToken"}, names)
}
