package logic

import "testing"

func TestBuildNarration(t *testing.T) {
	cases := []struct {
		content string
		author  string
		want    string
	}{
		{"Stay hungry", "Steve Jobs", "Stay hungry. By Steve Jobs."},
		{"Stay hungry.", "Steve Jobs", "Stay hungry. By Steve Jobs."},
		{"Why not?", "Anon", "Why not? By Anon."},
		{"  Less is more  ", "Rohe", "Less is more. By Rohe."},
		{"No author here", "", "No author here."},
	}
	for _, tc := range cases {
		if got := BuildNarration(tc.content, tc.author); got != tc.want {
			t.Errorf("BuildNarration(%q, %q) = %q, want %q", tc.content, tc.author, got, tc.want)
		}
	}
}

// 同样输入必须产出同样文案，音频指纹缓存依赖这一点
func TestBuildNarrationDeterministic(t *testing.T) {
	a := BuildNarration("Stay hungry", "Steve Jobs")
	b := BuildNarration("Stay hungry", "Steve Jobs")
	if a != b {
		t.Fatalf("文案不确定: %q vs %q", a, b)
	}
}
