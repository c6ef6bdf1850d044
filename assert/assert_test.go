package assert

import (
	"strings"
	"testing"
)

func TestT(t *testing.T) {

	T(true, "should never fire")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}

		if !strings.Contains(r.(string), "index 5 out of range") {
			t.Fatalf("unexpected panic message: %v", r)
		}
	}()

	T(false, "index %d out of range", 5)
}
