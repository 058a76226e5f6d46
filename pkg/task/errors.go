package task

import "errors"

// MonthRule explains the Jalali month lengths; it is attached to date parsing errors.
const MonthRule = "the year has 12 months; months 1-6 have 31 days, months 7-11 have 30 and month 12 has 29, or 30 in leap years"

var (
	ErrEmptyName        = errors.New("task name must not be empty")
	ErrInvalidStartDate = errors.New("invalid start date")
	ErrInvalidEndDate   = errors.New("invalid end date")
	ErrEndBeforeStart   = errors.New("end date cannot be before start date")
	ErrUnknownColor     = errors.New("unknown color")
	ErrEmptyStore       = errors.New("no tasks")
	ErrTaskNotFound     = errors.New("task not found")
)

const monthRuleFa = "دقت کنید 12 ماه داریم و حداکثر 31 روز در6 ماه اول سال و 30 روز در 6 ماه دوم سال"

var userMessages = []struct {
	err     error
	message string
}{
	{ErrEmptyName, "نام تسک نمی‌تواند خالی باشد"},
	{ErrInvalidStartDate, "فرمت تاریخ شروع نامعتبر است. " + monthRuleFa},
	{ErrInvalidEndDate, "فرمت تاریخ پایان نامعتبر است. " + monthRuleFa},
	{ErrEndBeforeStart, "تاریخ پایان نمی‌تواند قبل از تاریخ شروع باشد"},
	{ErrUnknownColor, "رنگ انتخاب شده در فهرست رنگ‌ها نیست"},
	{ErrEmptyStore, "تسکی برای نمایش وجود ندارد. لطفا ابتدا تسک اضافه کنید."},
	{ErrTaskNotFound, "تسک مورد نظر پیدا نشد"},
}

// UserMessage returns the Persian message shown to the user for err, or
// err.Error() when err is not one of this package's errors.
func UserMessage(err error) string {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return err.Error()
}

// IsValidationError reports whether err was caused by bad user input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrInvalidStartDate) ||
		errors.Is(err, ErrInvalidEndDate) ||
		errors.Is(err, ErrEndBeforeStart) ||
		errors.Is(err, ErrUnknownColor)
}
