package domain

import "strings"

// Subject is one exam subject with its ordered topic list. A subject may
// appear in more than one exam type (Matematik is both TYT and AYT).
type Subject struct {
	Name      string   `yaml:"name"`
	ExamTypes []string `yaml:"examTypes"`
	Topics    []string `yaml:"topics"`
}

func (s Subject) HasExamType(examType string) bool {
	for _, et := range s.ExamTypes {
		if strings.EqualFold(et, examType) {
			return true
		}
	}
	return false
}

// Taxonomy is the full subject/topic catalog for session entry pickers.
type Taxonomy struct {
	Subjects []Subject `yaml:"subjects"`
}

func (t Taxonomy) SubjectsFor(examType string) []Subject {
	if examType == "" {
		return t.Subjects
	}
	var out []Subject
	for _, s := range t.Subjects {
		if s.HasExamType(examType) {
			out = append(out, s)
		}
	}
	return out
}

func (t Taxonomy) TopicsFor(examType, subject string) []string {
	for _, s := range t.SubjectsFor(examType) {
		if strings.EqualFold(s.Name, subject) {
			return s.Topics
		}
	}
	return nil
}

// TopicHit is one row of a topic search.
type TopicHit struct {
	ExamType string
	Subject  string
	Topic    string
}

// Defaults is the built-in YKS catalog, used until the user edits or
// extends their own copy.
func Defaults() Taxonomy {
	return Taxonomy{Subjects: []Subject{
		{Name: "Türkçe", ExamTypes: []string{"TYT"}, Topics: []string{
			"Sözcükte Anlam", "Cümlede Anlam", "Paragraf", "Ses Bilgisi", "Yazım Kuralları", "Noktalama İşaretleri", "Dil Bilgisi",
		}},
		{Name: "Matematik", ExamTypes: []string{"TYT", "AYT"}, Topics: []string{
			"Temel Kavramlar", "Sayı Basamakları", "Bölme ve Bölünebilme", "Rasyonel Sayılar", "Denklem Çözme", "Problemler", "Fonksiyonlar", "Polinomlar", "Trigonometri", "Logaritma", "Diziler", "Limit", "Türev", "İntegral",
		}},
		{Name: "Geometri", ExamTypes: []string{"TYT", "AYT"}, Topics: []string{
			"Açılar", "Üçgenler", "Dörtgenler", "Çember", "Analitik Geometri", "Katı Cisimler",
		}},
		{Name: "Fizik", ExamTypes: []string{"TYT", "AYT"}, Topics: []string{
			"Fizik Bilimine Giriş", "Madde ve Özellikleri", "Hareket ve Kuvvet", "Enerji", "Elektrik", "Optik", "Dalgalar", "Manyetizma", "Modern Fizik",
		}},
		{Name: "Kimya", ExamTypes: []string{"TYT", "AYT"}, Topics: []string{
			"Kimya Bilimi", "Atom ve Periyodik Sistem", "Kimyasal Türler Arası Etkileşimler", "Maddenin Halleri", "Karışımlar", "Asitler ve Bazlar", "Kimyasal Tepkimeler", "Organik Kimya",
		}},
		{Name: "Biyoloji", ExamTypes: []string{"TYT", "AYT"}, Topics: []string{
			"Canlıların Ortak Özellikleri", "Hücre", "Kalıtım", "Ekosistem", "İnsan Fizyolojisi", "Bitki Biyolojisi",
		}},
		{Name: "Tarih", ExamTypes: []string{"TYT", "AYT"}, Topics: []string{
			"İlk Çağ Uygarlıkları", "İslamiyet Öncesi Türk Tarihi", "Osmanlı Devleti", "Kurtuluş Savaşı", "Atatürk İlkeleri",
		}},
		{Name: "Coğrafya", ExamTypes: []string{"TYT", "AYT"}, Topics: []string{
			"Doğa ve İnsan", "Harita Bilgisi", "İklim", "Nüfus", "Türkiye'nin Yer Şekilleri", "Ekonomik Faaliyetler",
		}},
		{Name: "Felsefe", ExamTypes: []string{"TYT"}, Topics: []string{
			"Felsefeye Giriş", "Bilgi Felsefesi", "Ahlak Felsefesi", "Din Felsefesi",
		}},
		{Name: "İngilizce", ExamTypes: []string{"YDT"}, Topics: []string{
			"Kelime Bilgisi", "Dil Bilgisi", "Okuma Anlama", "Çeviri", "Paragraf Tamamlama",
		}},
	}}
}
