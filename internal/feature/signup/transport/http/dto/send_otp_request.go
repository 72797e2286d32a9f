// Package dto はsignupフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
// フィールドの有無はハンドラー側で明示的にチェックします（レスポンスの
// メッセージを固定文言にするため、bindingのrequiredは使いません）。
package dto

// SendOTPReq は/api/send-otpエンドポイントのリクエストボディを表します。
type SendOTPReq struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
