package testutil

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialIDs(t *testing.T) {
	g := NewSequentialIDs("")
	assert.Equal(t, "run-0001", g.Generate())
	assert.Equal(t, "run-0002", g.Generate())
	assert.Equal(t, 2, g.Issued())

	custom := NewSequentialIDs("apply")
	assert.Equal(t, "apply-0001", custom.Generate())
}

func TestSequentialIDs_Concurrent(t *testing.T) {
	g := NewSequentialIDs("c")
	seen := make(map[string]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := g.Generate()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 50)
}

func TestWriteReadFile(t *testing.T) {
	path := WriteFile(t, "page.tsx", "To Do\n")
	assert.Equal(t, "page.tsx", filepath.Base(path))
	assert.Equal(t, "To Do\n", ReadFile(t, path))
}
