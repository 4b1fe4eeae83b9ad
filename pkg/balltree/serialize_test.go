// pkg/balltree/serialize_test.go
package balltree

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(77))
	data := randomMatrix(rng, 200, 4)
	tr, err := NewTree(data, Config{LeafSize: 7, P: 2})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tr.Serialize(&buf))

	restored, err := Deserialize(&buf, data)
	require.NoError(t, err)

	assert.Equal(t, tr.N(), restored.N())
	assert.Equal(t, tr.D(), restored.D())
	assert.Equal(t, tr.LeafSize(), restored.LeafSize())
	assert.Equal(t, tr.P(), restored.P())
	assert.Equal(t, tr.Idx(), restored.Idx())
	assert.Equal(t, tr.Centroids(), restored.Centroids())
	assert.Equal(t, tr.Info(), restored.Info())

	q := randomMatrix(rng, 1, 4).Row(0)
	wantIdx, wantDist, err := tr.KNN(q, 5, true)
	require.NoError(t, err)
	gotIdx, gotDist, err := restored.KNN(q, 5, true)
	require.NoError(t, err)
	assert.Equal(t, wantIdx, gotIdx)
	assert.Equal(t, wantDist, gotDist)
}

func TestSerializeToFromBytesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(78))
	data := randomMatrix(rng, 64, 3)
	tr, err := NewTree(data, Config{LeafSize: 4, P: 1})
	require.NoError(t, err)

	b, err := tr.SerializeToBytes()
	require.NoError(t, err)

	restored, err := DeserializeFromBytes(b, data)
	require.NoError(t, err)
	assert.NoError(t, restored.Validate(1e-9))
}

func TestDeserializeRejectsBadMagic(t *testing.T) {
	data := randomMatrix(rand.New(rand.NewSource(79)), 10, 2)
	garbage := bytes.Repeat([]byte{0xFF}, headerSize)
	_, err := Deserialize(bytes.NewReader(garbage), data)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestDeserializeRejectsTruncatedInput(t *testing.T) {
	rng := rand.New(rand.NewSource(80))
	data := randomMatrix(rng, 40, 3)
	tr, err := NewTree(data, Config{LeafSize: 5, P: 2})
	require.NoError(t, err)

	b, err := tr.SerializeToBytes()
	require.NoError(t, err)

	_, err = DeserializeFromBytes(b[:len(b)-10], data)
	assert.Error(t, err)
}
