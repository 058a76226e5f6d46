package task

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type ListRenderer interface {
	RenderTasks(tasks []Task) (string, error)
}

type CsvTaskRendererImpl struct {
}

func NewCsvTaskRenderer() *CsvTaskRendererImpl {
	return &CsvTaskRendererImpl{}
}

// RenderTasks writes one row per task, in the order given, with Jalali dates.
func (r *CsvTaskRendererImpl) RenderTasks(tasks []Task) (string, error) {
	data := make([][]string, 0, len(tasks)+1)
	data = append(data, []string{"id", "نام تسک", "شروع", "پایان", "مدت (روز)", "رنگ"})
	for _, t := range tasks {
		start, err := t.JalaliStart()
		if err != nil {
			return "", err
		}
		end, err := t.JalaliEnd()
		if err != nil {
			return "", err
		}
		data = append(data, []string{
			t.Id.String(),
			t.Name,
			start.String(),
			end.String(),
			strconv.Itoa(t.Duration),
			t.Color.Label,
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
