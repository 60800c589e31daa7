package match

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"
)

// ErrMissingTestMatch is returned when a script does not define test_match
var ErrMissingTestMatch = errors.New("script does not define a test_match function")

const testMatchFunc = "test_match"

// Script is an oracle whose predicate is written in Lua
// The script must define a global function test_match(cards) returning a boolean,
// where cards is a 1-indexed table of card ids.
type Script struct {
	size  int
	lock  sync.Mutex
	state *lua.LState
	fn    *lua.LFunction
}

// NewScriptFile loads a Lua oracle from a file
func NewScriptFile(path string, size int) (*Script, error) {
	return newScript(size, func(L *lua.LState) error {
		return L.DoFile(path)
	})
}

// NewScriptString loads a Lua oracle from source
func NewScriptString(src string, size int) (*Script, error) {
	return newScript(size, func(L *lua.LState) error {
		return L.DoString(src)
	})
}

func newScript(size int, load func(L *lua.LState) error) (*Script, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: false})
	if err := load(L); err != nil {
		L.Close()
		return nil, fmt.Errorf("could not load oracle script: %w", err)
	}

	fn, ok := L.GetGlobal(testMatchFunc).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, ErrMissingTestMatch
	}

	L.SetGlobal("claim_size", lua.LNumber(size))

	return &Script{
		size:  size,
		state: L,
		fn:    fn,
	}, nil
}

// Size is the number of cards in a match
func (s *Script) Size() int {
	return s.size
}

// TestMatch calls test_match in the script
// A script error is logged and treated as "no match"
func (s *Script) TestMatch(cards []int) bool {
	if len(cards) != s.size {
		return false
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	tbl := s.state.NewTable()
	for _, card := range cards {
		tbl.Append(lua.LNumber(card))
	}

	if err := s.state.CallByParam(lua.P{
		Fn:      s.fn,
		NRet:    1,
		Protect: true,
	}, tbl); err != nil {
		logrus.WithError(err).WithField("cards", cards).Error("oracle script failed")
		return false
	}

	ret := s.state.Get(-1)
	s.state.Pop(1)

	return lua.LVAsBool(ret)
}

// FindMatches returns up to limit matches that can be formed from cards
func (s *Script) FindMatches(cards []int, limit int) [][]int {
	return findMatches(cards, s.size, limit, s.TestMatch)
}

// Close releases the Lua state
func (s *Script) Close() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.state.Close()
}
