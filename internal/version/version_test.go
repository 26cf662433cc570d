package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	v, c, d := Info()
	switch {
	case v == "":
		t.Error("version should not be empty")
	case c == "":
		t.Error("commit should not be empty")
	case d == "":
		t.Error("date should not be empty")
	default:
		t.Log("version: ", v)
		t.Log("commit: ", c)
		t.Log("date: ", d)
	}
}

func TestString(t *testing.T) {
	s := String()
	switch {
	case !strings.Contains(s, "version="):
		t.Error("String should contain 'version='")
	case !strings.Contains(s, "commit="):
		t.Error("String should contain 'commit='")
	case !strings.Contains(s, "date="):
		t.Error("String should contain 'date='")
	default:
		t.Log("string: ", s)
	}
}

func TestAccessorsMatchInfo(t *testing.T) {
	v, c, d := Info()
	if GetVersion() != v {
		t.Errorf("GetVersion (%s) should match Info version (%s)", GetVersion(), v)
	}
	if GetCommit() != c {
		t.Errorf("GetCommit (%s) should match Info commit (%s)", GetCommit(), c)
	}
	if GetDate() != d {
		t.Errorf("GetDate (%s) should match Info date (%s)", GetDate(), d)
	}
}
