package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ikkim/bookstore-backend/internal/db"
	"gorm.io/gorm"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 클라이언트에 노출할 메시지
}

// ParseError 서비스 계층에서 매핑되지 않은 에러를 코드와 메시지로 변환
// DB 원문 메시지는 노출하지 않음
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Internal server error",
		}
	}

	// 1. 일시 장애
	if errors.Is(err, db.ErrUnavailable) {
		return ErrorInfo{
			Code:    InternalStoreUnavailable,
			Message: "Storage is temporarily unavailable, please retry",
		}
	}

	// 2. GORM 기본 에러
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return parseDuplicateKeyError(err.Error(), context)
	}

	errStrLower := strings.ToLower(err.Error())

	// 3. 번역되지 않은 드라이버 에러
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(err.Error(), context)
	}
	if strings.Contains(errStrLower, "not null constraint") || strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// 4. 기본 내부 서버 오류
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// parseDuplicateKeyError Unique constraint 위반 에러 파싱
func parseDuplicateKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr + " " + context)

	switch {
	case strings.Contains(errLower, "shopping_carts") || strings.Contains(errLower, "cart"):
		return ErrorInfo{Code: CartAlreadyExists, Message: "Shopping cart already exists"}
	case strings.Contains(errLower, "wishlist_books") || strings.Contains(errLower, "book_title"):
		return ErrorInfo{Code: WishlistBookExists, Message: "Book is already in the wishlist"}
	case strings.Contains(errLower, "wishlist"):
		return ErrorInfo{Code: WishlistAlreadyExists, Message: "Wishlist already exists"}
	case strings.Contains(errLower, "authors") || strings.Contains(errLower, "author"):
		return ErrorInfo{Code: AuthorAlreadyExists, Message: "Author already exists"}
	case strings.Contains(errLower, "books") || strings.Contains(errLower, "isbn") || strings.Contains(errLower, "book"):
		return ErrorInfo{Code: BookAlreadyExists, Message: "Book already exists"}
	case strings.Contains(errLower, "username") || strings.Contains(errLower, "user"):
		return ErrorInfo{Code: UserAlreadyExists, Message: "Username is already taken"}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Resource already exists",
	}
}

// getNotFoundMessage context에 따른 Not Found 메시지
func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "cart"):
		return "Shopping cart not found"
	case strings.Contains(contextLower, "wishlist"):
		return "Wishlist not found"
	case strings.Contains(contextLower, "review"):
		return "Review not found"
	case strings.Contains(contextLower, "author"):
		return "Author not found"
	case strings.Contains(contextLower, "book"):
		return "Book not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	}
	return "Requested resource not found"
}

// getDefaultErrorMessage context에 따른 기본 에러 메시지
func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"), strings.Contains(contextLower, "add"):
		return "Failed to create, please try again later"
	case strings.Contains(contextLower, "update"):
		return "Failed to update, please try again later"
	case strings.Contains(contextLower, "delete"), strings.Contains(contextLower, "remove"):
		return "Failed to delete, please try again later"
	}
	return "Internal server error, please try again later"
}

// StatusForCode 에러 코드에 대응하는 HTTP 상태 코드
// 코드로 결정할 수 없으면 fallback 반환
func StatusForCode(code string, fallback int) int {
	switch {
	case code == InternalStoreUnavailable:
		return http.StatusServiceUnavailable
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "_ALREADY_EXISTS"), code == WishlistBookExists:
		return http.StatusConflict
	case strings.HasPrefix(code, "VALIDATION_"):
		return http.StatusBadRequest
	}
	return fallback
}

// ParseAndRespond 에러를 파싱하여 응답 반환 (헬퍼 함수)
// 상태 코드는 파싱된 에러 코드 기준, 내부 오류만 statusCode 사용
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	statusCode = StatusForCode(errorInfo.Code, statusCode)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
