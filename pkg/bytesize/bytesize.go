// Package bytesize переводит размер в байтах в человекочитаемую строку и обратно.
//
// Format округляет частное до двух знаков, поэтому Parse(Format(n)) совпадает с n
// только с точностью до 0.01 единицы измерения. Эта погрешность допустима и
// учитывается при подсчёте квоты (см. Accounted).
package bytesize

import (
	"math"
	"strconv"
	"strings"
)

// Единицы измерения размера.
const (
	B  int64 = 1
	KB int64 = 1024
	MB int64 = 1024 * KB
	GB int64 = 1024 * MB
)

// scale упорядочен от меньшей единицы к большей, GB стоит последним.
var scale = []struct {
	factor int64
	label  string
}{
	{B, "Bytes"},
	{KB, "KB"},
	{MB, "MB"},
	{GB, "GB"},
}

// Format форматирует количество байт: 0 -> "0 Bytes", 1536 -> "1.5 KB".
func Format(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	idx := 0
	for idx+1 < len(scale) && bytes >= scale[idx+1].factor {
		idx++
	}

	value := float64(bytes) / float64(scale[idx].factor)
	value = math.Round(value*100) / 100

	return strconv.FormatFloat(value, 'f', -1, 64) + " " + scale[idx].label
}

// Parse разбирает строку вида "1.5 KB". Неизвестная единица или нечисловое значение дают 0.
func Parse(s string) int64 {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || value < 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0
	}

	factor := unitFactor(fields[1])
	if factor == 0 {
		return 0
	}

	return int64(math.Round(value * float64(factor)))
}

// Accounted возвращает размер, который займёт запись после Format/Parse,
// но не меньше фактического. Так сумма декодированных размеров не превышает квоту.
func Accounted(bytes int64) int64 {
	return max(bytes, Parse(Format(bytes)))
}

func unitFactor(label string) int64 {
	for _, u := range scale {
		if u.label == label {
			return u.factor
		}
	}
	return 0
}
