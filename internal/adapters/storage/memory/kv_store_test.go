package memory

import (
	"testing"

	"petstore-client/internal/ports/kv/kvtest"
)

func TestKVStore_Conformance(t *testing.T) {
	kvtest.Run(t, NewKVStore(), "")
}
