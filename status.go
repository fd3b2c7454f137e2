package novelsrc

import "strings"

// StatusTable classifies status text by case-insensitive substring match.
// Categories are checked in the order cancelled, hiatus, completed,
// ongoing so that phrases like "completed (dropped)" resolve to the
// stronger signal. Text matching nothing yields Fallback.
type StatusTable struct {
	Ongoing   []string
	Completed []string
	Hiatus    []string
	Cancelled []string
	Fallback  Status
}

// Classify returns the status text describes.
func (t StatusTable) Classify(text string) Status {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return t.Fallback
	}
	for _, c := range []struct {
		needles []string
		status  Status
	}{
		{t.Cancelled, StatusCancelled},
		{t.Hiatus, StatusOnHiatus},
		{t.Completed, StatusCompleted},
		{t.Ongoing, StatusOngoing},
	} {
		for _, n := range c.needles {
			if n != "" && strings.Contains(text, strings.ToLower(n)) {
				return c.status
			}
		}
	}
	return t.Fallback
}

// Func returns t.Classify as a StatusFunc for use in descriptors.
func (t StatusTable) Func() StatusFunc {
	return t.Classify
}

// DefaultStatusTable holds the status phrases seen across sources.
var DefaultStatusTable = StatusTable{
	Ongoing: []string{
		"ongoing", "on going", "publishing", "updating", "serializ",
		"مستمرة", "مستمر", "جارية",
		"продолжается", "выходит", "онгоинг",
		"em andamento", "em lançamento", "ativo",
		"en curso", "en emisión", "emisión", "publicándose",
		"devam ediyor", "devam",
		"триває", "виходить",
		"đang tiến hành", "đang ra", "còn tiếp",
		"berlangsung", "berjalan",
		"en cours",
	},
	Completed: []string{
		"completed", "complete", "finished", "concluded",
		"مكتملة", "مكتمل", "منتهية",
		"завершен", "завершён", "закончен",
		"completo", "concluído", "concluido", "finalizado",
		"terminado",
		"tamamlandı", "tamamlandi", "bitti",
		"завершено", "закінчено",
		"hoàn thành", "đã hoàn thành", "full",
		"tamat", "selesai",
		"terminé", "achevé",
	},
	Hiatus: []string{
		"hiatus", "on hold", "paused",
		"متوقفة مؤقتا", "متوقف مؤقتا",
		"заморожен", "приостановлен",
		"hiato", "pausado", "en pausa",
		"ara verildi", "askıda",
		"призупинено", "заморожено",
		"tạm ngưng", "tạm ngừng", "tạm dừng",
		"en pause",
	},
	Cancelled: []string{
		"cancelled", "canceled", "dropped", "discontinued", "abandoned",
		"ملغية", "متروكة",
		"заброшен", "прекращ",
		"cancelado", "abandonado",
		"bırakıldı", "iptal",
		"покинуто", "скасовано",
		"đã hủy", "đã ngừng",
		"dihentikan",
		"abandonné", "annulé",
	},
	Fallback: StatusUnknown,
}

// ClassifyStatus classifies text with DefaultStatusTable.
func ClassifyStatus(text string) Status {
	return DefaultStatusTable.Classify(text)
}
