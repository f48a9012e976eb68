package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProductNotFound is returned when a product cannot be found upstream
	ErrProductNotFound = errors.New("product not found")

	// ErrPlatformUnavailable is returned when a platform API request fails
	ErrPlatformUnavailable = errors.New("platform API request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// User-facing Persian error messages, kept verbatim from the extension UI.
const (
	MsgDigikalaSearchFailed = "جستجو با خطا مواجه شد"
	MsgTorobSearchFailed    = "خطا در جستجوی ترب"
	MsgDigikalaDetailFailed = "خطا در دریافت اطلاعات محصول"
	MsgTorobDetailFailed    = "خطا در دریافت اطلاعات محصول از ترب"
	MsgProductNotFound      = "محصول یافت نشد"
	MsgBothPlatformsFailed  = "خطا در جستجو در هر دو پلتفرم"
)
