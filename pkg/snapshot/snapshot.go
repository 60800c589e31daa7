package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var (
	funcCount = make(map[string]int)
	countLock sync.Mutex
)

// ValidateSnapshot performs snapshot testing
// The object is compared, as indented JSON, against testdata/<func>-<call>.json.
// A missing file is created. Set SNAPSHOT_UPDATE=1 to rewrite existing files.
func ValidateSnapshot(t *testing.T, obj interface{}, depth int, msgAndArgs ...interface{}) {
	t.Helper()
	skip := 1 + depth

	pc, _, _, _ := runtime.Caller(skip)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	countLock.Lock()
	call := funcCount[funcName]
	funcCount[funcName] = call + 1
	countLock.Unlock()

	filename := filepath.Join("testdata", fmt.Sprintf("%s-%d.json", funcName, call))

	expects, err := os.ReadFile(filename)
	if err != nil || os.Getenv("SNAPSHOT_UPDATE") == "1" {
		if err == nil || os.IsNotExist(err) {
			create(t, filename, obj)
			return
		}

		t.Fatal(err)
	}

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatal(err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

func create(t *testing.T, filename string, obj interface{}) {
	t.Helper()
	logrus.WithField("filename", filename).Info("writing snapshot file")

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatal(err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(obj); err != nil {
		t.Fatal(err)
	}
}
