package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/stafftrack/hrms-backend-go/internal/config"
	appHTTP "github.com/stafftrack/hrms-backend-go/internal/handler/http"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/cron"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/database"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/jwt"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/otp"
	"github.com/stafftrack/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/stafftrack/hrms-backend-go/internal/service/attendance"
	authService "github.com/stafftrack/hrms-backend-go/internal/service/auth"
	identityService "github.com/stafftrack/hrms-backend-go/internal/service/identity"
	notificationService "github.com/stafftrack/hrms-backend-go/internal/service/notification"
	reportService "github.com/stafftrack/hrms-backend-go/internal/service/report"
	requestService "github.com/stafftrack/hrms-backend-go/internal/service/request"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	identityRepo := postgresql.NewIdentityRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	modificationRepo := postgresql.NewModificationRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	otpCache := otp.NewCache(cfg.AdminOTP.TTL)

	authSvc := authService.NewAuthService(identityRepo, jwtService, otpCache)
	identitySvc := identityService.NewIdentityService(identityRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, modificationRepo, identityRepo, cfg.Attendance.GraceMinutes)
	requestSvc := requestService.NewRequestService(db, requestRepo, identityRepo, notificationRepo)
	notificationSvc := notificationService.NewNotificationService(notificationRepo)
	reportSvc := reportService.NewReportService(reportRepo, identityRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	identityHandler := appHTTP.NewIdentityHandler(identitySvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	requestHandler := appHTTP.NewRequestHandler(requestSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("otp-cache-sweep", time.Minute, otpCache.Sweep)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		identityHandler,
		attendanceHandler,
		requestHandler,
		notificationHandler,
		reportHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server started at", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
