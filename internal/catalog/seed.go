package catalog

// miningMethodologies are the 11 БПМ entries (information gathering).
var miningMethodologies = []Methodology{
	{Code: "БПМ1", Name: "Опросы", Category: CategoryMining, Description: "Количественные исследования с большими выборками", TypicalEffortHours: 16, RequiresDetails: true},
	{Code: "БПМ2", Name: "Интервью с клиентами", Category: CategoryMining, Description: "Качественные интервью с клиентами для выявления инсайтов", TypicalEffortHours: 24, RequiresDetails: true},
	{Code: "БПМ3", Name: "Оргинтервью", Category: CategoryMining, Description: "Организационные интервью - анализ проблем через интервью с сотрудниками", TypicalEffortHours: 12, RequiresDetails: true},
	{Code: "БПМ4", Name: "Кабинетный анализ", Category: CategoryMining, Description: "Desk research: анализ вторичных данных, отчетов, документации", TypicalEffortHours: 8, RequiresDetails: false},
	{Code: "БПМ5", Name: "Хронометраж", Category: CategoryMining, Description: "Наблюдение и измерение временных затрат на процессы", TypicalEffortHours: 16, RequiresDetails: true},
	{Code: "БПМ6", Name: "Тайник", Category: CategoryMining, Description: "Mystery shopping / Тайный покупатель", TypicalEffortHours: 12, RequiresDetails: true},
	{Code: "БПМ7", Name: "Ассесмент", Category: CategoryMining, Description: "Оценка компетенций сотрудников и команды", TypicalEffortHours: 8, RequiresDetails: true},
	{Code: "БПМ8", Name: "Фокус-группа", Category: CategoryMining, Description: "Групповая дискуссия для выявления коллективных мнений", TypicalEffortHours: 10, RequiresDetails: true},
	{Code: "БПМ9", Name: "Анализ база", Category: CategoryMining, Description: "Анализ клиентской базы и данных CRM", TypicalEffortHours: 20, RequiresDetails: true},
	{Code: "БПМ10", Name: "Анализ рынка", Category: CategoryMining, Description: "Исследование рыночной конъюнктуры и конкурентов", TypicalEffortHours: 16, RequiresDetails: true},
	{Code: "БПМ11", Name: "Анализ производства", Category: CategoryMining, Description: "Исследование производственных процессов и мощностей", TypicalEffortHours: 12, RequiresDetails: true},
}

// assemblingMethodologies are the 25 БПА entries (consolidation into slides).
var assemblingMethodologies = []Methodology{
	{Code: "БПА1", Name: "Целевые клиентские группы (ЦКГ)", Category: CategoryAssembling, Description: "Сегментация и описание целевых клиентских групп", TypicalEffortHours: 8, RequiresDetails: true},
	{Code: "БПА2", Name: "Приоритетные рынки (Оценка по 5 силам Портера)", Category: CategoryAssembling, Description: "Оценка и приоритизация рынков", TypicalEffortHours: 6, RequiresDetails: true},
	{Code: "БПА3", Name: "Как сегменты", Category: CategoryAssembling, Description: "Сегментация рынка", TypicalEffortHours: 6, RequiresDetails: true},
	{Code: "БПА4", Name: "Как регионы", Category: CategoryAssembling, Description: "Региональная сегментация", TypicalEffortHours: 6, RequiresDetails: true},
	{Code: "БПА5", Name: "Целевой трафик-мэп (TM)", Category: CategoryAssembling, Description: "Карта целевого трафика", TypicalEffortHours: 8, RequiresDetails: true},
	{Code: "БПА6", Name: "Бизнес-процессы", Category: CategoryAssembling, Description: "Описание бизнес-процессов", TypicalEffortHours: 10, RequiresDetails: true},
	{Code: "БПА7", Name: "Кроссфункциональные процессы (КФП)", Category: CategoryAssembling, Description: "Кроссфункциональные процессы (например, выравнивание)", TypicalEffortHours: 10, RequiresDetails: true},
	{Code: "БПА8", Name: "Процессы функциональных колодцев", Category: CategoryAssembling, Description: "БП + примечание, например, CM, ОП, HR и т.п.", TypicalEffortHours: 8, RequiresDetails: true},
	{Code: "БПА9", Name: "Целевая Ассортиментная матрица (AM)", Category: CategoryAssembling, Description: "Ассортиментная матрица", TypicalEffortHours: 8, RequiresDetails: true},
	{Code: "БПА10", Name: "Ценовая политика (Цена)", Category: CategoryAssembling, Description: "Разработка ценовой политики", TypicalEffortHours: 8, RequiresDetails: true},
	{Code: "БПА11", Name: "Позиционирование (Бренд/УТП/EVP)", Category: CategoryAssembling, Description: "Позиционирование бренда и ценностное предложение", TypicalEffortHours: 10, RequiresDetails: true},
	{Code: "БПА12", Name: "CJM/EJM", Category: CategoryAssembling, Description: "Customer Journey Map / Employee Journey Map", TypicalEffortHours: 10, RequiresDetails: true},
	{Code: "БПА13", Name: "Оргструктура (ОС)", Category: CategoryAssembling, Description: "Оргструктура + примечание, например, ОМ, ОП, HR и т.п.", TypicalEffortHours: 6, RequiresDetails: true},
	{Code: "БПА14", Name: "Модель компетенций (МК)", Category: CategoryAssembling, Description: "Разработка модели компетенций", TypicalEffortHours: 8, RequiresDetails: true},
	{Code: "БПА15", Name: "Материалы поддержки продаж (МПП)", Category: CategoryAssembling, Description: "МПП, включая книгу продаж, скрипты и т.п.", TypicalEffortHours: 12, RequiresDetails: true},
	{Code: "БПА16", Name: "ИТ-стек (БТ и тп)", Category: CategoryAssembling, Description: "Описание ИТ-стека и бизнес-технологий", TypicalEffortHours: 6, RequiresDetails: true},
	{Code: "БПА17", Name: "Целевая модель данных (ЦМД)", Category: CategoryAssembling, Description: "Целевая модель данных", TypicalEffortHours: 10, RequiresDetails: true},
	{Code: "БПА18", Name: "Рычаги роста (Брейн)", Category: CategoryAssembling, Description: "Рычаги роста по доходам или расходам", TypicalEffortHours: 8, RequiresDetails: true},
	{Code: "БПА19", Name: "Финмодель (ФМ) или Финмашина", Category: CategoryAssembling, Description: "Финансовая модель или Финмашина", TypicalEffortHours: 16, RequiresDetails: true},
	{Code: "БПА20", Name: "Модель Остервальдера и Пинье (ОиП) или Бизнес-модель (БМ)", Category: CategoryAssembling, Description: "Бизнес-модель Остервальдера и Пинье или Бизнес-модель Canvas", TypicalEffortHours: 8, RequiresDetails: true},
	{Code: "БПА21", Name: "Бизнес-календари и Операционная система работ (ОСР)", Category: CategoryAssembling, Description: "Бизнес-календари и ОСР", TypicalEffortHours: 8, RequiresDetails: true},
	{Code: "БПА22", Name: "Должностные инструкции (ДИ) или папка сотрудника", Category: CategoryAssembling, Description: "Должностные инструкции или папка сотрудника", TypicalEffortHours: 8, RequiresDetails: true},
	{Code: "БПА23", Name: "Функциональная стратегия", Category: CategoryAssembling, Description: "Разработка функциональной стратегии", TypicalEffortHours: 10, RequiresDetails: true},
	{Code: "БПА24", Name: "Найм", Category: CategoryAssembling, Description: "Процессы и материалы найма", TypicalEffortHours: 6, RequiresDetails: true},
	{Code: "БПА25", Name: "Проведение обучения", Category: CategoryAssembling, Description: "Материалы и процессы обучения", TypicalEffortHours: 8, RequiresDetails: true},
}

// SeedEntries returns the full fixed catalog in seed order.
func SeedEntries() []Methodology {
	out := make([]Methodology, 0, len(miningMethodologies)+len(assemblingMethodologies))
	out = append(out, miningMethodologies...)
	out = append(out, assemblingMethodologies...)
	return out
}
