package collections

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

const (
	defaultAdminEmail    = "admin@systemcraft.ru"
	defaultAdminPassword = "admin123456"
)

// Seed populates empty collections with the data a fresh install needs:
// an admin account, the public site content, measurement units, title-page
// templates and calculator pricing. Safe to call on every startup — each
// block is skipped when its collection already has records.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedAdminUser(app); err != nil {
		return err
	}
	if err := seedSiteContent(app); err != nil {
		return err
	}
	if err := seedUnits(app); err != nil {
		return err
	}
	if err := seedTitlePageTemplates(app); err != nil {
		return err
	}
	if err := seedCalculatorSettings(app); err != nil {
		return err
	}
	return nil
}

func seedAdminUser(app *pocketbase.PocketBase) error {
	usersCol, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		return fmt.Errorf("seed: users collection: %w", err)
	}

	existing, err := app.FindRecordsByFilter(usersCol, "id != ''", "", 1, 0, nil)
	if err == nil && len(existing) > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
		log.Println("seed: using the default admin password — change it after first login")
	}

	admin := core.NewRecord(usersCol)
	admin.SetEmail(email)
	admin.SetVerified(true)
	admin.SetPassword(password)
	admin.Set("name", "Администратор")
	admin.Set("role", "admin")
	admin.Set("is_active", true)

	if err := app.Save(admin); err != nil {
		return fmt.Errorf("seed: create admin user: %w", err)
	}
	log.Printf("seed: created admin user %s\n", email)
	return nil
}

func seedSiteContent(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("site_content")
	if err != nil {
		return fmt.Errorf("seed: site_content collection: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "id != ''", "", 1, 0, nil)
	if err == nil && len(existing) > 0 {
		return nil
	}

	sections := map[string]any{
		"company": map[string]any{
			"name":        "СистемаКрафт",
			"legalName":   "ООО «СистемаКрафт»",
			"foundedYear": 2009,
			"tagline":     "Строим системы и сети",
		},
		"hero": map[string]any{
			"slides": []map[string]any{
				{
					"id":          "sks",
					"title":       "СКС",
					"subtitle":    "Структурированные кабельные системы",
					"description": "Современная кабельная инфраструктура с гарантией до 25 лет",
					"image":       "",
				},
				{
					"id":          "sot",
					"title":       "Видеонаблюдение",
					"subtitle":    "Система охранного телевидения",
					"description": "IP-камеры 4K с интеллектуальной аналитикой и облачным хранением",
					"image":       "",
				},
				{
					"id":          "saps",
					"title":       "Пожарная безопасность",
					"subtitle":    "САПС и СОУЭ под ключ",
					"description": "Автоматическая пожарная сигнализация и система оповещения",
					"image":       "",
				},
			},
		},
		"solutions": map[string]any{
			"title": "Инженерные системы под ключ",
			"badge": "Системы и сети",
		},
		"advantages": map[string]any{
			"title": "Почему выбирают нас",
			"items": []map[string]any{
				{"id": "1", "title": "Полный цикл работ", "description": "От проектирования до технического обслуживания", "icon": "CheckCircle2"},
				{"id": "2", "title": "Сертифицированные специалисты", "description": "Команда профессионалов с лицензиями МЧС", "icon": "Award"},
				{"id": "3", "title": "Прозрачное ценообразование", "description": "Точная смета без скрытых платежей", "icon": "Calculator"},
			},
			"stats": []map[string]any{
				{"id": "1", "value": "50+", "label": "Специалистов в штате"},
				{"id": "2", "value": "500k+", "label": "м² смонтированных систем"},
				{"id": "3", "value": "200+", "label": "Довольных клиентов"},
			},
		},
		"portfolio": map[string]any{
			"title":    "Наши проекты",
			"projects": []map[string]any{},
		},
		"certificates": map[string]any{
			"title": "Сертификаты и лицензии",
			"items": []map[string]any{},
		},
		"contact": map[string]any{
			"title":    "Свяжитесь с нами",
			"phone":    "+7 (495) 000-00-00",
			"email":    "info@systemcraft.ru",
			"address":  "Москва",
			"telegram": "",
		},
		"seo": map[string]any{
			"title":       "СистемаКрафт — инженерные системы под ключ",
			"description": "Проектирование и монтаж слаботочных и инженерных систем",
			"keywords":    []string{"СКС", "СКУД", "видеонаблюдение", "пожарная сигнализация"},
		},
	}

	for key, value := range sections {
		record := core.NewRecord(col)
		record.Set("key", key)
		record.Set("value", value)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: content section %q: %w", key, err)
		}
	}
	log.Printf("seed: created %d site content sections\n", len(sections))
	return nil
}

type unitDef struct {
	code     string
	name     string
	fullName string
	category string
}

func seedUnits(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("units")
	if err != nil {
		return fmt.Errorf("seed: units collection: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "id != ''", "", 1, 0, nil)
	if err == nil && len(existing) > 0 {
		return nil
	}

	units := []unitDef{
		{"796", "шт", "штука", "piece"},
		{"006", "м", "метр", "length"},
		{"055", "м²", "квадратный метр", "area"},
		{"113", "м³", "кубический метр", "volume"},
		{"166", "кг", "килограмм", "weight"},
		{"168", "т", "тонна", "weight"},
		{"356", "ч", "час", "time"},
		{"839", "компл", "комплект", "piece"},
		{"778", "упак", "упаковка", "piece"},
	}

	for _, u := range units {
		record := core.NewRecord(col)
		record.Set("code", u.code)
		record.Set("name", u.name)
		record.Set("full_name", u.fullName)
		record.Set("category", u.category)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: unit %q: %w", u.name, err)
		}
	}
	log.Printf("seed: created %d measurement units\n", len(units))
	return nil
}

type templateDef struct {
	name                  string
	description           string
	documentTitle         string
	approvedBy            string
	developerPosition     string
	chiefEngineerPosition string
}

func seedTitlePageTemplates(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("title_page_templates")
	if err != nil {
		return fmt.Errorf("seed: title_page_templates collection: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "id != ''", "", 1, 0, nil)
	if err == nil && len(existing) > 0 {
		return nil
	}

	year := fmt.Sprintf("%d", time.Now().Year())
	templates := []templateDef{
		{
			name:                  "Стандартный",
			description:           "Базовый шаблон исполнительной документации",
			documentTitle:         "ИСПОЛНИТЕЛЬНАЯ ДОКУМЕНТАЦИЯ",
			developerPosition:     "Производитель работ",
			chiefEngineerPosition: "Главный инженер",
		},
		{
			name:                  "Строительство",
			description:           "Для строительных проектов",
			documentTitle:         "ИСПОЛНИТЕЛЬНАЯ ДОКУМЕНТАЦИЯ\nСТРОИТЕЛЬНЫХ РАБОТ",
			approvedBy:            "Главный инженер проекта",
			developerPosition:     "Производитель работ",
			chiefEngineerPosition: "Главный инженер строительства",
		},
		{
			name:                  "Монтажные работы",
			description:           "Для монтажных и пусконаладочных работ",
			documentTitle:         "ИСПОЛНИТЕЛЬНАЯ ДОКУМЕНТАЦИЯ\nМОНТАЖНЫХ И ПУСКОНАЛАДОЧНЫХ РАБОТ",
			approvedBy:            "Технический директор",
			developerPosition:     "Начальник участка",
			chiefEngineerPosition: "Главный инженер",
		},
	}

	for _, t := range templates {
		record := core.NewRecord(col)
		record.Set("name", t.name)
		record.Set("description", t.description)
		record.Set("document_title", t.documentTitle)
		record.Set("year", year)
		record.Set("approved_by", t.approvedBy)
		record.Set("developer_position", t.developerPosition)
		record.Set("chief_engineer_position", t.chiefEngineerPosition)
		record.Set("is_default", true)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: template %q: %w", t.name, err)
		}
	}
	log.Printf("seed: created %d title page templates\n", len(templates))
	return nil
}

func seedCalculatorSettings(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("calculator_settings")
	if err != nil {
		return fmt.Errorf("seed: calculator_settings collection: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "id != ''", "", 1, 0, nil)
	if err == nil && len(existing) > 0 {
		return nil
	}

	record := core.NewRecord(col)
	record.Set("system_code", "SAPS")
	record.Set("system_name", "САПС (Система автоматической пожарной сигнализации)")
	record.Set("price_per_room", 5000)
	record.Set("price_per_room_area", 150)
	record.Set("price_per_corridor_area", 100)
	if err := app.Save(record); err != nil {
		return fmt.Errorf("seed: calculator settings: %w", err)
	}
	log.Println("seed: created default calculator settings")
	return nil
}
