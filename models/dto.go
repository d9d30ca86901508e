package models

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
	Gender   string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=ADMIN USER"`
	Gender   string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	Address  string `json:"address"`
}

type UpdateUserRequest struct {
	ID      int    `json:"id" binding:"required"`
	Name    string `json:"name"`
	Email   string `json:"email" binding:"omitempty,email"`
	Role    string `json:"role" binding:"omitempty,oneof=ADMIN USER"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Gender  string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
}

type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Gender  string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	Avatar  string `json:"avatar"`
}

type ProductRequest struct {
	Name                string   `json:"name" binding:"required"`
	Price               float64  `json:"price" binding:"required,gte=0"`
	Brand               string   `json:"brand" binding:"required"`
	Category            string   `json:"category" binding:"required"`
	ShortDescription    string   `json:"short_description"`
	DetailedDescription string   `json:"detailed_description"`
	Images              []string `json:"images"`
}

type AddToCartRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,gte=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	ReceiverName    string `json:"receiver_name" binding:"required"`
	ReceiverPhone   string `json:"receiver_phone" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}
