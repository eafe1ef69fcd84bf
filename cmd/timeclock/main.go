package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/xkxksk1234/Attendance-Manager/internal/app"
	"github.com/xkxksk1234/Attendance-Manager/internal/attendance"
	"github.com/xkxksk1234/Attendance-Manager/internal/bootstrap"
	"github.com/xkxksk1234/Attendance-Manager/internal/config"
	"github.com/xkxksk1234/Attendance-Manager/internal/employee"
	"github.com/xkxksk1234/Attendance-Manager/internal/shared/contextutil"
)

const usage = `usage: timeclock <command> [flags]

commands:
  in        clock an employee in
  out       clock an employee out (latest open shift that day)
  out-now   close the employee's most recently opened shift, any date
  out-key   clock out one explicitly addressed record
  day       list records for a date (default today)
  month     list records for a month (YYYY-MM)
  rm        delete a record by id
  emp       manage employees: add | ls | get | rm | wage
`

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := bootstrap.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	loc, err := cfg.Database.Location()
	if err != nil {
		logger.Fatal("resolve timezone", zap.Error(err))
	}

	a, err := app.New(cfg.Database.Path, loc, logger)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer a.Close()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := contextutil.WithRequestID(context.Background(), contextutil.NewRequestID())

	if err := run(ctx, a, loc, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, loc *time.Location, cmd string, args []string) error {
	switch cmd {
	case "in":
		fs := flag.NewFlagSet("in", flag.ExitOnError)
		empNo := fs.String("emp", "", "employee number")
		date := fs.String("date", "", "work date YYYY-MM-DD (default today)")
		at := fs.String("time", "", "clock-in time HH:MM[:SS] (default now)")
		memo := fs.String("memo", "", "free-text note")
		fs.Parse(args)

		resp, err := a.Attendance.ClockIn(ctx, attendance.ClockInRequest{
			EmpNo: *empNo, Date: *date, Time: *at, Memo: optional(*memo),
		})
		if err != nil {
			return err
		}
		return printJSON(resp)

	case "out":
		fs := flag.NewFlagSet("out", flag.ExitOnError)
		empNo := fs.String("emp", "", "employee number")
		date := fs.String("date", "", "date of the open shift (default today)")
		at := fs.String("time", "", "clock-out time HH:MM[:SS] (default now)")
		memo := fs.String("memo", "", "replacement note, empty keeps the old one")
		fs.Parse(args)

		resp, err := a.Attendance.ClockOut(ctx, attendance.ClockOutRequest{
			EmpNo: *empNo, Date: *date, Time: *at, Memo: optional(*memo),
		})
		if err != nil {
			return err
		}
		return printJSON(resp)

	case "out-now":
		fs := flag.NewFlagSet("out-now", flag.ExitOnError)
		empNo := fs.String("emp", "", "employee number")
		fs.Parse(args)

		now := time.Now().In(loc)
		rows, err := a.Records.CloseLatestOpen(ctx, *empNo,
			now.Format("2006-01-02"), now.Format("15:04:05"))
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("no open shift for employee %s", *empNo)
		}
		fmt.Printf("records updated: %d\n", rows)
		return nil

	case "out-key":
		fs := flag.NewFlagSet("out-key", flag.ExitOnError)
		empNo := fs.String("emp", "", "employee number")
		date := fs.String("date", "", "work date YYYY-MM-DD")
		inTime := fs.String("in", "", "clock-in time of the record")
		outDate := fs.String("out-date", "", "override close date (default derived)")
		outTime := fs.String("out", "", "clock-out time HH:MM[:SS]")
		memo := fs.String("memo", "", "replacement note, empty keeps the old one")
		fs.Parse(args)

		rows, err := a.Attendance.ClockOutByKey(ctx, attendance.ClockOutByKeyRequest{
			EmpNo: *empNo, Date: *date, InTime: *inTime,
			OutDate: *outDate, OutTime: *outTime, Memo: optional(*memo),
		})
		if err != nil {
			return err
		}
		fmt.Printf("records updated: %d\n", rows)
		return nil

	case "day":
		fs := flag.NewFlagSet("day", flag.ExitOnError)
		date := fs.String("date", "", "date YYYY-MM-DD (default today)")
		fs.Parse(args)

		var (
			list []attendance.RecordResponse
			err  error
		)
		if *date == "" {
			list, err = a.Attendance.TodayRecords(ctx)
		} else {
			list, err = a.Attendance.RecordsAt(ctx, *date)
		}
		if err != nil {
			return err
		}
		return printJSON(list)

	case "month":
		fs := flag.NewFlagSet("month", flag.ExitOnError)
		ym := fs.String("ym", "", "month YYYY-MM")
		fs.Parse(args)

		list, err := a.Attendance.RecordsInMonth(ctx, *ym)
		if err != nil {
			return err
		}
		return printJSON(list)

	case "rm":
		fs := flag.NewFlagSet("rm", flag.ExitOnError)
		id := fs.Int64("id", 0, "record id")
		fs.Parse(args)

		rows, err := a.Records.DeleteByID(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Printf("records deleted: %d\n", rows)
		return nil

	case "emp":
		if len(args) < 1 {
			return fmt.Errorf("usage: timeclock emp <add|ls|get|rm|wage> [flags]")
		}
		return runEmployee(ctx, a, args[0], args[1:])

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runEmployee(ctx context.Context, a *app.App, cmd string, args []string) error {
	switch cmd {
	case "add":
		fs := flag.NewFlagSet("emp add", flag.ExitOnError)
		empNo := fs.String("emp", "", "employee number")
		name := fs.String("name", "", "display name")
		position := fs.String("position", "", "position")
		wage := fs.Int64("wage", 0, "hourly wage")
		phone := fs.String("phone", "", "phone number")
		fs.Parse(args)

		resp, err := a.Employees.Upsert(ctx, employee.CreateEmployeeRequest{
			EmpNo:      *empNo,
			Name:       *name,
			Position:   optional(*position),
			HourlyWage: *wage,
			Phone:      optional(*phone),
		})
		if err != nil {
			return err
		}
		return printJSON(resp)

	case "ls":
		list, err := a.Employees.GetAll(ctx)
		if err != nil {
			return err
		}
		return printJSON(list)

	case "get":
		fs := flag.NewFlagSet("emp get", flag.ExitOnError)
		empNo := fs.String("emp", "", "employee number")
		fs.Parse(args)

		resp, err := a.Employees.GetByEmpNo(ctx, *empNo)
		if err != nil {
			return err
		}
		return printJSON(resp)

	case "rm":
		fs := flag.NewFlagSet("emp rm", flag.ExitOnError)
		empNo := fs.String("emp", "", "employee number")
		fs.Parse(args)

		return a.Employees.Delete(ctx, *empNo)

	case "wage":
		fs := flag.NewFlagSet("emp wage", flag.ExitOnError)
		empNo := fs.String("emp", "", "employee number")
		wage := fs.Int64("wage", 0, "hourly wage")
		fs.Parse(args)

		return a.Employees.UpdateWage(ctx, *empNo, *wage)

	default:
		return fmt.Errorf("unknown emp command %q", cmd)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
