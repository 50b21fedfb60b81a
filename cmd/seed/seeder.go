package main

import (
	"context"
	"fmt"
	"time"

	"medical-appointments-api/config"
	"medical-appointments-api/internal/domain/entity"
	domainRepo "medical-appointments-api/internal/domain/repository"
	"medical-appointments-api/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const demoPassword = "medico123"

type demoDoctor struct {
	Name          string
	Surname       string
	Email         string
	Phone         string
	NationalID    string
	Specialty     string
	LicenseNumber string
	ShiftStart    string
	ShiftEnd      string
	Days          []string
}

var demoDoctors = []demoDoctor{
	{"Dr. Carlos", "Mendoza", "carlos.mendoza@hospital.com", "11-2345-6789", "12345678", "Cardiología", "MP-12345", "09:00", "13:00", []string{"Lunes", "Martes", "Miércoles"}},
	{"Dra. Ana", "García", "ana.garcia@hospital.com", "11-3456-7890", "23456789", "Neurología", "MP-23456", "14:00", "18:00", []string{"Martes", "Miércoles", "Jueves"}},
	{"Dr. Roberto", "Silva", "roberto.silva@hospital.com", "11-4567-8901", "34567890", "Dermatología", "MP-34567", "10:00", "16:00", []string{"Lunes", "Jueves", "Viernes"}},
	{"Dra. María", "López", "maria.lopez@hospital.com", "11-5678-9012", "45678901", "Pediatría", "MP-45678", "08:00", "14:00", []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}},
	{"Dr. Luis", "Fernández", "luis.fernandez@hospital.com", "11-6789-0123", "56789012", "Ginecología", "MP-56789", "13:00", "17:00", []string{"Miércoles", "Jueves", "Viernes"}},
}

const demoPatientEmail = "paciente@hospital.com"

type seeder struct {
	db              *gorm.DB
	log             *logrus.Logger
	cfg             config.SeedConfig
	userRepo        domainRepo.UserRepository
	specialtyRepo   domainRepo.SpecialtyRepository
	doctorRepo      domainRepo.DoctorRepository
	appointmentRepo domainRepo.AppointmentRepository
	historyRepo     domainRepo.HistoryRepository
}

func newSeeder(db *gorm.DB, log *logrus.Logger, cfg config.SeedConfig) *seeder {
	return &seeder{
		db:              db,
		log:             log,
		cfg:             cfg,
		userRepo:        repository.NewUserRepository(),
		specialtyRepo:   repository.NewSpecialtyRepository(),
		doctorRepo:      repository.NewDoctorRepository(),
		appointmentRepo: repository.NewAppointmentRepository(),
		historyRepo:     repository.NewHistoryRepository(),
	}
}

// Run is idempotent: accounts that already exist are left alone.
func (s *seeder) Run(ctx context.Context) error {
	tx := s.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if s.cfg.AdminPassword == "" {
		s.log.Warn("SEED_ADMIN_PASSWORD is empty, skipping admin account")
	} else if _, err := s.ensureUser(ctx, tx, &entity.User{
		Name:       "Admin",
		Surname:    "Sistema",
		Email:      s.cfg.AdminEmail,
		NationalID: "10000001",
		Role:       entity.RoleAdmin,
	}, s.cfg.AdminPassword); err != nil {
		return err
	}

	specialties, err := s.specialtyRepo.FindActive(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to load specialties: %w", err)
	}
	specialtyIDs := make(map[string]int64, len(specialties))
	for _, sp := range specialties {
		specialtyIDs[sp.Name] = sp.ID
	}

	var firstDoctor *entity.Doctor
	for _, d := range demoDoctors {
		doctor, err := s.ensureDoctor(ctx, tx, d, specialtyIDs)
		if err != nil {
			return err
		}
		if firstDoctor == nil {
			firstDoctor = doctor
		}
	}

	phone, address, insurance, number := "1187654321", "Calle Falsa 123", "OSDE", "3104567890"
	birthDate := time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC)
	patient, err := s.ensureUser(ctx, tx, &entity.User{
		Name:            "Juan",
		Surname:         "Paciente",
		Email:           demoPatientEmail,
		NationalID:      "20000002",
		Phone:           &phone,
		Address:         &address,
		BirthDate:       &birthDate,
		InsuranceName:   &insurance,
		InsuranceNumber: &number,
		Role:            entity.RolePatient,
	}, demoPassword)
	if err != nil {
		return err
	}

	if patient != nil && firstDoctor != nil {
		if err := s.ensurePastVisit(ctx, tx, patient, firstDoctor); err != nil {
			return err
		}
	}

	return tx.Commit().Error
}

// ensureUser creates the user unless the email or DNI is taken. It returns nil when skipped.
func (s *seeder) ensureUser(ctx context.Context, tx *gorm.DB, user *entity.User, password string) (*entity.User, error) {
	exists, err := s.userRepo.ExistsByEmailOrNationalID(ctx, tx, user.Email, user.NationalID)
	if err != nil {
		return nil, err
	}
	if exists {
		s.log.WithField("email", user.Email).Info("User already exists, skipping")
		return s.userRepo.FindActiveByEmail(ctx, tx, user.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashed)
	user.Status = entity.StatusActive

	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", user.Email, err)
	}
	s.log.WithFields(logrus.Fields{"email": user.Email, "role": user.Role}).Info("User created")
	return user, nil
}

func (s *seeder) ensureDoctor(ctx context.Context, tx *gorm.DB, d demoDoctor, specialtyIDs map[string]int64) (*entity.Doctor, error) {
	specialtyID, ok := specialtyIDs[d.Specialty]
	if !ok {
		s.log.WithField("specialty", d.Specialty).Warn("Specialty missing, skipping doctor")
		return nil, nil
	}

	exists, err := s.userRepo.ExistsByEmailOrNationalID(ctx, tx, d.Email, d.NationalID)
	if err != nil {
		return nil, err
	}
	if exists {
		return s.findDoctorByEmail(ctx, tx, d.Email)
	}

	phone := d.Phone
	user, err := s.ensureUser(ctx, tx, &entity.User{
		Name:       d.Name,
		Surname:    d.Surname,
		Email:      d.Email,
		Phone:      &phone,
		NationalID: d.NationalID,
		Role:       entity.RoleDoctor,
	}, demoPassword)
	if err != nil {
		return nil, err
	}

	doctor := &entity.Doctor{
		UserID:         user.ID,
		SpecialtyID:    specialtyID,
		LicenseNumber:  d.LicenseNumber,
		ShiftStart:     d.ShiftStart,
		ShiftEnd:       d.ShiftEnd,
		AttendanceDays: datatypes.JSONSlice[string](d.Days),
		Status:         entity.StatusActive,
	}
	if err := s.doctorRepo.Create(ctx, tx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor %s: %w", d.Email, err)
	}
	return doctor, nil
}

func (s *seeder) findDoctorByEmail(ctx context.Context, tx *gorm.DB, email string) (*entity.Doctor, error) {
	doctors, err := s.doctorRepo.FindActive(ctx, tx)
	if err != nil {
		return nil, err
	}
	for i := range doctors {
		if doctors[i].User.Email == email {
			return &doctors[i], nil
		}
	}
	return nil, nil
}

// ensurePastVisit books a completed appointment a month ago with its history record.
func (s *seeder) ensurePastVisit(ctx context.Context, tx *gorm.DB, patient *entity.User, doctor *entity.Doctor) error {
	existing, err := s.appointmentRepo.FindByPatient(ctx, tx, patient.ID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	visitDate := time.Date(now.Year(), now.Month()-1, now.Day(), 0, 0, 0, 0, time.UTC)
	reason, notes := "Chequeo anual del corazón", "Paciente asistió puntual."

	appointment := &entity.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      visitDate,
		Time:      "10:00",
		Reason:    &reason,
		Status:    entity.AppointmentStatusCompleted,
		Notes:     &notes,
	}
	if err := s.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		return fmt.Errorf("failed to create past appointment: %w", err)
	}

	diagnosis := "Hipertensión leve controlada."
	treatment := "Dieta baja en sodio y ejercicio moderado."
	medications := "Enalapril 5mg si la presión sube de 14/9."
	followUp := "Volver a control en 6 meses."
	record := &entity.HistoryRecord{
		PatientID:     patient.ID,
		DoctorID:      doctor.ID,
		AppointmentID: &appointment.ID,
		Date:          visitDate,
		Diagnosis:     &diagnosis,
		Treatment:     &treatment,
		Medications:   &medications,
		Notes:         &followUp,
	}
	if err := s.historyRepo.Create(ctx, tx, record); err != nil {
		return fmt.Errorf("failed to create history record: %w", err)
	}

	s.log.WithField("appointment_id", appointment.ID).Info("Past visit created")
	return nil
}
