package dto

// LoginReq は/api/loginエンドポイントのリクエストボディを表します。
// roleは任意で、指定時は保存されたロールと一致する必要があります。
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
