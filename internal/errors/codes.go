package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 클라이언트는 message 대신 이 코드를 기준으로 분기함

const (
	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 잘못된 입력
	ValidationRequired     = "VALIDATION_REQUIRED"      // 필수 항목
	ValidationNoChanges    = "VALIDATION_NO_CHANGES"    // 변경할 항목 없음

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재

	// ==================== 사용자 (USER_) ====================
	UserNotFound      = "USER_NOT_FOUND"      // 사용자 없음
	UserAlreadyExists = "USER_ALREADY_EXISTS" // username 중복

	// ==================== 장바구니 (CART_) ====================
	CartNotFound        = "CART_NOT_FOUND"        // 장바구니 없음
	CartAlreadyExists   = "CART_ALREADY_EXISTS"   // 이미 장바구니 있음
	CartItemNotFound    = "CART_ITEM_NOT_FOUND"   // 장바구니에 없는 상품
	CartInvalidItem     = "CART_INVALID_ITEM"     // 잘못된 상품 정보
	CartInvalidQuantity = "CART_INVALID_QUANTITY" // 수량은 1 이상

	// ==================== 위시리스트 (WISHLIST_) ====================
	WishlistNotFound      = "WISHLIST_NOT_FOUND"      // 위시리스트 없음
	WishlistAlreadyExists = "WISHLIST_ALREADY_EXISTS" // 이미 위시리스트 있음
	WishlistBookExists    = "WISHLIST_BOOK_EXISTS"    // 이미 담긴 책

	// ==================== 도서 (BOOK_) ====================
	BookNotFound        = "BOOK_NOT_FOUND"        // 도서 없음 (조건에 맞는 도서 없음 포함)
	BookAlreadyExists   = "BOOK_ALREADY_EXISTS"   // ISBN 중복
	BookInvalidInput    = "BOOK_INVALID_INPUT"    // 잘못된 도서 정보
	BookInvalidRating   = "BOOK_INVALID_RATING"   // 평점은 0-5
	BookInvalidDiscount = "BOOK_INVALID_DISCOUNT" // 할인율은 0-100

	// ==================== 저자 (AUTHOR_) ====================
	AuthorNotFound      = "AUTHOR_NOT_FOUND"      // 저자 없음
	AuthorAlreadyExists = "AUTHOR_ALREADY_EXISTS" // 저자 ID 중복

	// ==================== 리뷰 (REVIEW_) ====================
	ReviewNotFound  = "REVIEW_NOT_FOUND"  // 리뷰 없음
	ReviewInvalid   = "REVIEW_INVALID"    // 잘못된 리뷰 (평점 1-5)
	ReviewInvalidID = "REVIEW_INVALID_ID" // 잘못된 리뷰 ID 형식

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError      = "INTERNAL_SERVER_ERROR"      // 서버 오류
	InternalDatabaseError    = "INTERNAL_DATABASE_ERROR"    // DB 오류
	InternalStoreUnavailable = "INTERNAL_STORE_UNAVAILABLE" // DB/락 일시 장애
)
