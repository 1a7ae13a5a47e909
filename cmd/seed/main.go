package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ikkim/bookstore-backend/config"
	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/app/repository"
	"github.com/ikkim/bookstore-backend/internal/db"
	"github.com/ikkim/bookstore-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Expected header: username | password | name | email | home_address
const (
	colUsername = iota
	colPassword
	colName
	colEmail
	colHomeAddress
)

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	database, err := db.Open(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	userRepo := repository.NewUserRepository(database)

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	users, err := readUsersFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total users to import: %d\n", len(users))

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	// 배치로 저장
	batchSize := 1000
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	inserted, err := userRepo.BulkCreate(context.Background(), users, batchSize)
	if err != nil {
		log.Fatal("Failed to bulk create users:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Users imported: %d (existing usernames skipped: %d)\n", inserted, int64(len(users))-inserted)
}

func readUsersFromXLSX(filePath string) ([]model.User, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	// 첫 번째 시트 이름 가져오기
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var users []model.User
	seen := make(map[string]bool) // 파일 내 중복 username 제거
	skippedCount := 0

	// 첫 행은 헤더이므로 스킵
	for i, row := range rows[1:] {
		username := cell(row, colUsername)
		password := cell(row, colPassword)

		if username == "" || password == "" || seen[username] {
			skippedCount++
			continue
		}
		seen[username] = true

		hash, err := util.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		users = append(users, model.User{
			Username:     username,
			PasswordHash: hash,
			Name:         cell(row, colName),
			Email:        cell(row, colEmail),
			HomeAddress:  cell(row, colHomeAddress),
		})
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid users: %d\n", len(users))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return users, nil
}

// GetRows trims trailing empty cells, so short rows are expected.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
