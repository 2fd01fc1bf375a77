package semver

import (
	"errors"
	"reflect"
	"testing"
)

func TestV_String(test *testing.T) {
	cases := []struct {
		v        V
		expected string
	}{
		{V{}, "0.0.0"},
		{V{Major: 1}, "1.0.0"},
		{V{Major: 1, Minor: 2}, "1.2.0"},
		{V{Major: 1, Minor: 2, Patch: 3}, "1.2.3"},
		{V{PreRelease: "alfa"}, "0.0.0-alfa"},
		{V{BuildMetadata: []string{"tag1", "tag2"}}, "0.0.0+tag1.tag2"},
		{V{Major: 1, Minor: 2, Patch: 3, PreRelease: "beta", BuildMetadata: []string{"x64"}}, "1.2.3-beta+x64"},
	}

	for _, c := range cases {
		test.Logf("%#v", c.v)
		actual := c.v.String()
		if actual != c.expected {
			test.Errorf("Error: expected %q, actual %q", c.expected, actual)
		}
	}
}

func TestParse(test *testing.T) {
	cases := []struct {
		input    string
		expected V
	}{
		{"0.0.0", V{}},
		{"1.2.3", V{Major: 1, Minor: 2, Patch: 3}},
		{"v0.4.0", V{Minor: 4}},
		{"1.0.0-rc.1", V{Major: 1, PreRelease: "rc.1"}},
		{"1.0.0+git.a1b2c3", V{Major: 1, BuildMetadata: []string{"git", "a1b2c3"}}},
		{"1.2.3-beta+x64", V{Major: 1, Minor: 2, Patch: 3, PreRelease: "beta", BuildMetadata: []string{"x64"}}},
	}
	for _, c := range cases {
		actual, err := Parse(c.input)
		if err != nil {
			test.Errorf("Parse(%q): unexpected error %v", c.input, err)
			continue
		}
		if !reflect.DeepEqual(actual, c.expected) {
			test.Errorf("Parse(%q): expected %#v, actual %#v", c.input, c.expected, actual)
		}
		if actual.String() != c.expected.String() {
			test.Errorf("Parse(%q): unexpected string %q", c.input, actual.String())
		}
	}
}

func TestParse_errors(test *testing.T) {
	cases := []string{
		"",
		"1",
		"1.2",
		"1.2.3.4",
		"1.02.3",
		"a.b.c",
		"1.2.-3",
		"1.2.3-",
		"1.2.3-beta..1",
		"1.2.3+",
		"1.2.3+meta_data",
	}
	for _, c := range cases {
		if v, err := Parse(c); !errors.Is(err, ErrSyntax) {
			test.Errorf("Parse(%q): expected ErrSyntax, actual %v, %v", c, v, err)
		}
	}
}
