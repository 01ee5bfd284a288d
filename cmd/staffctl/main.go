// staffctl is the interactive front end for the staff directory: it collects
// raw input, renders results, and gates deletion behind two independent
// confirmations before invoking the lifecycle.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-directory/internal/config"
	"github.com/spec-kit/staff-directory/internal/domain"
	"github.com/spec-kit/staff-directory/internal/observability"
	"github.com/spec-kit/staff-directory/internal/persistence"
	"github.com/spec-kit/staff-directory/internal/repository"
	"github.com/spec-kit/staff-directory/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	if pg.Handle() == nil {
		fmt.Fprintln(os.Stderr, "POSTGRES_DSN is required")
		os.Exit(1)
	}

	db := pg.Handle()
	staffService := service.NewStaffService(*cfg, logger, service.StaffDependencies{
		StaffRepo:     repository.NewStaffRepository(db),
		ReferenceRepo: repository.NewReferenceRepository(db),
	})

	reader := bufio.NewReader(os.Stdin)

	switch os.Args[1] {
	case "register":
		err = runRegister(ctx, reader, staffService)
	case "login":
		err = runLogin(ctx, reader, staffService)
	case "passwd":
		err = runPasswd(ctx, reader, staffService)
	case "modify":
		err = runModify(ctx, reader, staffService)
	case "delete":
		err = runDelete(ctx, reader, staffService)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: staffctl <register|login|passwd|modify|delete>")
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func runRegister(ctx context.Context, reader *bufio.Reader, svc *service.StaffService) error {
	input := service.RegisterInput{
		FirstName: prompt(reader, "First name"),
		LastName:  prompt(reader, "Last name"),
		Username:  prompt(reader, "Username"),
		Secret:    prompt(reader, "Password"),
		Email:     prompt(reader, "Email"),
	}
	addressID, err := strconv.Atoi(prompt(reader, "Address ID"))
	if err != nil {
		return domain.ErrInvalidInteger
	}
	storeID, err := strconv.Atoi(prompt(reader, "Store ID"))
	if err != nil {
		return domain.ErrInvalidInteger
	}
	input.AddressID = addressID
	input.StoreID = storeID

	account, err := svc.Register(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("registered staff id %d\n", account.ID)
	return nil
}

func runLogin(ctx context.Context, reader *bufio.Reader, svc *service.StaffService) error {
	username := prompt(reader, "Username")
	secret := prompt(reader, "Password")

	account, err := svc.Authenticate(ctx, username, secret)
	if err != nil {
		return err
	}
	fmt.Println("login successful")
	printAccount(account)
	return nil
}

func runPasswd(ctx context.Context, reader *bufio.Reader, svc *service.StaffService) error {
	username := prompt(reader, "Username")
	oldSecret := prompt(reader, "Old password")
	newSecret := prompt(reader, "New password")
	if confirm := prompt(reader, "Confirm new password"); confirm != newSecret {
		return fmt.Errorf("passwords do not match")
	}

	if err := svc.RotateCredential(ctx, username, oldSecret, newSecret); err != nil {
		return err
	}
	fmt.Println("password changed")
	return nil
}

func runModify(ctx context.Context, reader *bufio.Reader, svc *service.StaffService) error {
	id, err := strconv.Atoi(prompt(reader, "Staff ID"))
	if err != nil {
		return domain.ErrInvalidInteger
	}
	account, err := svc.FindByID(ctx, id)
	if err != nil {
		return err
	}
	printAccount(account)

	fmt.Println("modifiable fields:")
	for i, field := range domain.MutableFields {
		fmt.Printf("  %d. %s\n", i+1, field)
	}
	choice, err := strconv.Atoi(prompt(reader, "Field number"))
	if err != nil || choice < 1 || choice > len(domain.MutableFields) {
		return fmt.Errorf("invalid field choice")
	}
	field := domain.MutableFields[choice-1]

	current, _ := account.ValueOf(field)
	fmt.Printf("current %s: %v\n", field, current)
	rawValue := prompt(reader, "New value (blank keeps current)")
	if rawValue == "" {
		fmt.Println("nothing to change")
		return nil
	}

	updated, err := svc.ModifyField(ctx, id, string(field), rawValue)
	if err != nil {
		return err
	}
	fmt.Println("updated")
	printAccount(updated)
	return nil
}

func runDelete(ctx context.Context, reader *bufio.Reader, svc *service.StaffService) error {
	username := prompt(reader, "Username")
	account, err := svc.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	printAccount(account)

	// Deletion is irreversible, so it is gated behind two independent
	// confirmations.
	if answer := strings.ToLower(prompt(reader, "Delete this account? (y/N)")); answer != "y" && answer != "yes" {
		fmt.Println("aborted")
		return nil
	}
	if prompt(reader, "Type the username to confirm") != username {
		fmt.Println("confirmation mismatch, aborted")
		return nil
	}

	if err := svc.Delete(ctx, username); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", username)
	return nil
}

func printAccount(account *domain.StaffAccount) {
	status := "inactive"
	if account.Active {
		status = "active"
	}
	fmt.Printf("  id:          %d\n", account.ID)
	fmt.Printf("  name:        %s %s\n", account.FirstName, account.LastName)
	fmt.Printf("  email:       %s\n", account.Email)
	fmt.Printf("  username:    %s\n", account.Username)
	fmt.Printf("  address id:  %d\n", account.AddressID)
	fmt.Printf("  store id:    %d\n", account.StoreID)
	fmt.Printf("  status:      %s\n", status)
	fmt.Printf("  last update: %s\n", account.LastUpdate.Format("2006-01-02 15:04:05"))
}
