// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextSanitizerService はフォームから送信された自由入力テキストを
// 保存前にプレーンテキストへ正規化し、マークアップの持ち込みを防ぐ。
// bluemondayの厳格ポリシーで全タグを除去する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizerService は自由入力テキストのサニタイズ機能のインターフェースを定義する。
// ToDoの内容、食事・運動の名称、予定の説明など、保存される全ての自由入力に適用する。
type TextSanitizerService interface {
	// Sanitize は入力からHTMLタグを全て除去したプレーンテキストを返す。
	// 前後の空白は取り除く。空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(input string) string
}

// textSanitizer はTextSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicy（許可タグなし）を使用する。保存されるのはプレーンテキストであり、
// 表示時のエスケープはhtml/templateが行う。
func NewTextSanitizer() *textSanitizer {
	return &textSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からHTMLタグを全て除去したプレーンテキストを返す。
// StrictPolicyはタグ除去後に特殊文字を実体参照へエスケープするため、
// 二重エスケープを避けるべく実体参照を元の文字に戻してから返す。
func (s *textSanitizer) Sanitize(input string) string {
	if input == "" {
		return ""
	}
	cleaned := s.policy.Sanitize(input)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// compile-time interface check
var _ TextSanitizerService = (*textSanitizer)(nil)
