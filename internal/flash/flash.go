// Package flash はリダイレクト越しに1回だけ表示されるフラッシュメッセージを提供する。
//
// メッセージはCookieに格納され、次のページ描画時に読み出されて破棄される。
// 改ざん防止のためセッションシークレットを鍵にHMAC-SHA256で署名する。
// 署名が検証できないCookieは存在しないものとして扱う。
package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"
)

const cookieName = "lifelog_flash"

// Kind はフラッシュメッセージの種別を表す。
const (
	KindSuccess = "success"
	KindError   = "error"
)

// Message は1回限りのフラッシュメッセージを表す。
type Message struct {
	Kind string // success または error
	Text string
}

// Store はフラッシュメッセージの設定と署名鍵を保持する。
type Store struct {
	secret       []byte
	cookieSecure bool
	cookieDomain string
}

// NewStore はStoreを生成する。secretにはセッションシークレットを渡す。
func NewStore(secret string, cookieSecure bool, cookieDomain string) *Store {
	return &Store{
		secret:       []byte(secret),
		cookieSecure: cookieSecure,
		cookieDomain: cookieDomain,
	}
}

// Set はフラッシュメッセージをCookieに書き込む。
// 既存のメッセージは上書きされる（保持するのは常に直近の1件のみ）。
func (s *Store) Set(w http.ResponseWriter, kind, text string) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(kind + "\x00" + text))
	value := payload + "." + s.sign(payload)

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		Domain:   s.cookieDomain,
		MaxAge:   300, // 表示されないまま5分経過したメッセージは破棄する
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop はフラッシュメッセージを読み出してCookieを破棄する。
// メッセージがない場合、または署名が検証できない場合はnilを返す。
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) *Message {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	// 読み出したら即座にCookieをクリアする（1回限りの表示）
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		Domain:   s.cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	payload, sig, ok := strings.Cut(cookie.Value, ".")
	if !ok {
		return nil
	}
	if !hmac.Equal([]byte(s.sign(payload)), []byte(sig)) {
		return nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil
	}
	kind, text, ok := strings.Cut(string(decoded), "\x00")
	if !ok {
		return nil
	}

	return &Message{Kind: kind, Text: text}
}

// sign はペイロードのHMAC-SHA256署名を16進文字列で返す。
func (s *Store) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
