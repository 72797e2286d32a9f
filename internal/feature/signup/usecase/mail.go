package usecase

import "context"

// MailSender はメール送信の外部コラボレーターを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/mail）ではなくコンシューマー（usecase）が定義します。
//
// 送信失敗はリクエスト失敗として伝播させてはなりません。呼び出し側は
// ログに記録して処理を継続します（開発環境でメール基盤が無くても
// フローが止まらないようにするため）。
type MailSender interface {
	// Send は指定された宛先にHTML本文のメールを送信します。
	Send(ctx context.Context, to, subject, bodyHTML string) error
}
