package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel は共通のフィールドを持つ基本モデル
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"type:timestamp with time zone" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp with time zone" json:"updated_at"`
}

// BeforeCreate は作成時に東京時間を設定
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	jst, _ := time.LoadLocation("Asia/Tokyo")
	now := time.Now().In(jst)
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

// BeforeUpdate は更新時に東京時間を設定
func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	jst, _ := time.LoadLocation("Asia/Tokyo")
	b.UpdatedAt = time.Now().In(jst)
	return nil
}

// 在庫ステータスの遷移: ordered → shipped → out_for_delivery → delivered → selling → sold → paid
const (
	StatusOrdered        = "ordered"
	StatusShipped        = "shipped"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusSelling        = "selling"
	StatusSold           = "sold"
	StatusPaid           = "paid"
)

type User struct {
	BaseModel
	Email string `gorm:"unique;type:varchar(255);not null" json:"email"`
	Name  string `gorm:"size:100" json:"name"`

	ContactEmails []ContactEmail `gorm:"foreignKey:UserID" json:"-"`
}

// ContactEmail はベンダーへの注文に使う連絡先アドレスです。
// Webhookで受けたメールの送信元からユーザーを逆引きするために使います。
type ContactEmail struct {
	BaseModel
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Email  string `gorm:"unique;type:varchar(255);not null" json:"email"`
	Label  string `gorm:"size:100" json:"label"`
}

// Inventory は仕入れた端末1台分のレコードです
type Inventory struct {
	BaseModel
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	OrderNumber string `gorm:"size:50;index;comment:ベンダー発行の注文番号" json:"order_number"`
	ItemIndex   int    `gorm:"default:0;comment:同一注文内の商品番号" json:"item_index"`
	Status      string `gorm:"size:30;not null;default:ordered" json:"status"`

	ModelName    string `gorm:"size:100;not null" json:"model_name"`
	Storage      string `gorm:"size:20;not null" json:"storage"`
	Color        string `gorm:"size:50" json:"color"`
	SerialNumber string `gorm:"size:30" json:"serial_number"`
	IMEI         string `gorm:"size:30" json:"imei"`

	PurchasePrice int `gorm:"default:0;comment:仕入価格（円）" json:"purchase_price"`
	ExpectedPrice int `gorm:"default:0;comment:想定売却価格（円）" json:"expected_price"`
	ActualPrice   int `gorm:"default:0;comment:実際の売却価格（円）" json:"actual_price"`

	OrderDate             string `gorm:"size:10;comment:YYYY-MM-DD" json:"order_date"`
	ExpectedDeliveryStart string `gorm:"size:20" json:"expected_delivery_start"`
	ExpectedDeliveryEnd   string `gorm:"size:20" json:"expected_delivery_end"`

	DeliveredAt *time.Time `gorm:"type:timestamp with time zone" json:"delivered_at"`
	SoldAt      *time.Time `gorm:"type:timestamp with time zone" json:"sold_at"`
	PaidAt      *time.Time `gorm:"type:timestamp with time zone" json:"paid_at"`

	Carrier        string `gorm:"size:50" json:"carrier"`
	TrackingNumber string `gorm:"size:50" json:"tracking_number"`

	PaymentCard    string `gorm:"size:50" json:"payment_card"`
	PurchaseSource string `gorm:"size:50" json:"purchase_source"`
	SoldTo         string `gorm:"size:100" json:"sold_to"`
	OrderToken     string `gorm:"size:100;comment:Apple注文照会トークン" json:"order_token"`
	Notes          string `gorm:"type:text" json:"notes"`

	PaymentMethodID *uint `json:"payment_method_id"`
	ContactEmailID  *uint `json:"contact_email_id"`
}

// PaymentMethod は支払い方法（クレジットカード等）です。
// 締め日・支払日は支払いスケジュール集計で使います。
type PaymentMethod struct {
	BaseModel
	UserID             uint   `gorm:"not null;index" json:"user_id"`
	Name               string `gorm:"size:100;not null" json:"name"`
	Type               string `gorm:"size:30;default:credit_card" json:"type"`
	ClosingDay         *int   `gorm:"comment:締め日（毎月の日）" json:"closing_day"`
	PaymentDay         *int   `gorm:"comment:支払日（毎月の日）" json:"payment_day"`
	PaymentMonthOffset *int   `gorm:"comment:締め月から支払月までのオフセット" json:"payment_month_offset"`
	CreditLimit        *int   `json:"credit_limit"`
	SortOrder          int    `gorm:"default:0" json:"sort_order"`
	IsActive           bool   `gorm:"default:true" json:"is_active"`
}

// Shipment は買い手への発送記録です
type Shipment struct {
	BaseModel
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	InventoryID    *uint      `gorm:"index" json:"inventory_id"`
	Destination    string     `gorm:"size:200" json:"destination"`
	Carrier        string     `gorm:"size:50" json:"carrier"`
	TrackingNumber string     `gorm:"size:50" json:"tracking_number"`
	Status         string     `gorm:"size:30;default:preparing" json:"status"`
	ShippedAt      *time.Time `gorm:"type:timestamp with time zone" json:"shipped_at"`
}

// Reward は購入で得たポイント・還元の記録です
type Reward struct {
	BaseModel
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	Source    string `gorm:"size:100;not null;comment:ポイントの発生元" json:"source"`
	Points    int    `gorm:"not null" json:"points"`
	EarnedAt  string `gorm:"size:10;not null;comment:YYYY-MM-DD" json:"earned_at"`
	ExpiresAt string `gorm:"size:10" json:"expires_at"`
	Note      string `gorm:"type:text" json:"note"`
}

// PriceHistory は買取価格の推移です（別プロセスのスクレイパーが投入）
type PriceHistory struct {
	BaseModel
	ModelName  string    `gorm:"size:100;not null;index:idx_price_model" json:"model_name"`
	Storage    string    `gorm:"size:20;not null;index:idx_price_model" json:"storage"`
	Price      int       `gorm:"not null" json:"price"`
	ColorNote  string    `gorm:"size:100" json:"color_note"`
	CapturedAt time.Time `gorm:"type:timestamp with time zone;not null;index" json:"captured_at"`
}

// EmailLog はWebhookで受信したメールの処理結果です
type EmailLog struct {
	BaseModel
	MessageID   string `gorm:"size:100;index" json:"message_id"`
	FromAddress string `gorm:"size:255" json:"from_address"`
	ToAddress   string `gorm:"size:255" json:"to_address"`
	Subject     string `gorm:"size:500" json:"subject"`
	EmailType   string `gorm:"size:50" json:"email_type"`
	Status      string `gorm:"size:30;comment:processed/skipped/error" json:"status"`
	Detail      string `gorm:"type:text" json:"detail"`
}
