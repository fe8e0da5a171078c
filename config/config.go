package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"nooralanwar/invoicing/domain"
)

type Config struct {
	DataFile      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ExportDir    string
	PrintDelayMS int

	CompanyName           string
	CompanyNameArabic     string
	CompanySubtitle       string
	CompanySubtitleArabic string
	CompanyDescription    string
	CompanyVATTRN         string
}

func Load() Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	delay, err := strconv.Atoi(getEnv("PRINT_DELAY_MS", "300"))
	if err != nil || delay < 0 {
		delay = 300
	}

	cfg := Config{
		DataFile:      os.Getenv("INVOICE_DATA_FILE"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		ExportDir:    getEnv("INVOICE_EXPORT_DIR", "."),
		PrintDelayMS: delay,

		CompanyName:           getEnv("COMPANY_NAME", "NOOR-AL-ANWAR"),
		CompanyNameArabic:     getEnv("COMPANY_NAME_AR", "نــــــــور الانـــــــوار"),
		CompanySubtitle:       getEnv("COMPANY_SUBTITLE", "SANITARY & ELECTRICAL TRADING"),
		CompanySubtitleArabic: getEnv("COMPANY_SUBTITLE_AR", "لتجارة الادوات الصحية والكهربائية"),
		CompanyDescription:    getEnv("COMPANY_DESCRIPTION", "DEALER'S IN SANITARY & ELECTRICAL MATERIAL AND ORDER SUPPLIERS"),
		CompanyVATTRN:         getEnv("COMPANY_VAT_TRN", "100318837000003"),
	}

	return cfg
}

func (c Config) Company() domain.CompanyInfo {
	return domain.CompanyInfo{
		Name:           c.CompanyName,
		NameArabic:     c.CompanyNameArabic,
		Subtitle:       c.CompanySubtitle,
		SubtitleArabic: c.CompanySubtitleArabic,
		Description:    c.CompanyDescription,
		VATTRN:         c.CompanyVATTRN,
	}
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
