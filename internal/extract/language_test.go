package extract

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"据报道，该药物在临床研究中显示91%的有效率。", "zh-CN"},
		{"The study shows a 91% efficacy rate.", "en"},
		{"この薬は臨床試験で高い有効性を示した。", "ja"},
		{"이 약물은 임상시험에서 효과를 보였다.", "ko"},
		{"Исследование показало высокую эффективность.", "ru"},
		{"", "en"},
		{"12345 !!!", "en"},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.text); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestLooksTranslated(t *testing.T) {
	translated := []string{
		"据外媒报道，这项技术已经取得突破。",
		"本文翻译自一份英文报告。",
		"英媒称该项目即将启动。",
	}
	for _, text := range translated {
		if !LooksTranslated(text) {
			t.Errorf("LooksTranslated(%q) = false, want true", text)
		}
	}

	if LooksTranslated("这是一段普通的本地新闻报道内容。") {
		t.Error("plain local text flagged as translated")
	}
}
