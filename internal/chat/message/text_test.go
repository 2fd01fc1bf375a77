package message

import "testing"

func TestClean(test *testing.T) {
	cases := []struct {
		data     []byte
		expected string
	}{
		{[]byte{}, ""},
		{[]byte("hi"), "hi"},
		{[]byte("/exit\n"), "/exit"},
		{[]byte("/exit\r\n"), "/exit"},
		{[]byte("Hello, 世界!"), "Hello, 世界!"},
		{[]byte("line 1\nline 2"), "line 1 line 2"},
		{[]byte("line 1\r\n\r\nline 2"), "line 1 line 2"},
		{[]byte("tab\there"), "tab here"},
		{[]byte("bell\a"), "bell"},
		{[]byte{226, 140, '!'}, "!"},           // truncated "⌘"
		{[]byte{'a', 226, 140, 152, 'b'}, "a⌘b"}, // "⌘": []byte{226, 140, 152}
		{[]byte{0xff, 0xfe}, ""},
		{[]byte("\n\n"), ""},
	}
	for _, c := range cases {
		if actual := Clean(c.data); actual != c.expected {
			test.Errorf("Data: %[1]v, %[1]q; expected: %q; actual: %q", c.data, c.expected, actual)
		}
	}
}
