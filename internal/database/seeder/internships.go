package seeder

import (
	"context"

	"intern-match/internal/domain/internship"
)

type InternshipSeeder struct {
	Internships internship.Repository
}

func (InternshipSeeder) Name() string { return "internships" }

// Run upserts the sample catalog. Existing rows keep their counters.
func (s InternshipSeeder) Run(ctx context.Context) error {
	_, err := s.Internships.Upsert(ctx, SampleInternships())
	return err
}

func SampleInternships() []internship.Internship {
	return []internship.Internship{
		{
			Title:           "Software Engineering Intern",
			Organization:    "TechCorp",
			Department:      "Engineering",
			Location:        "San Francisco, CA",
			Duration:        "3 months",
			Stipend:         "$5000/month",
			Description:     "Work on cutting-edge web applications using React and Node.js",
			RequiredSkills:  []string{"JavaScript", "React", "Node.js"},
			Interests:       []string{"Web Development", "Technology"},
			EducationLevels: []string{"graduate", "postgraduate"},
			TotalPositions:  3,
		},
		{
			Title:           "Data Science Intern",
			Organization:    "DataLabs",
			Department:      "Analytics",
			Location:        "New York, NY",
			Duration:        "4 months",
			Stipend:         "$4500/month",
			Description:     "Analyze large datasets and build machine learning models",
			RequiredSkills:  []string{"Python", "Machine Learning", "SQL"},
			Interests:       []string{"Data Science", "Analytics"},
			EducationLevels: []string{"graduate", "postgraduate"},
			TotalPositions:  2,
		},
		{
			Title:           "Marketing Intern",
			Organization:    "BrandCo",
			Department:      "Marketing",
			Location:        "Los Angeles, CA",
			Duration:        "2 months",
			Stipend:         "$3000/month",
			Description:     "Support digital marketing campaigns and social media strategy",
			RequiredSkills:  []string{"Social Media", "Content Creation", "Analytics"},
			Interests:       []string{"Marketing", "Creative"},
			EducationLevels: []string{"graduate"},
			TotalPositions:  2,
		},
		{
			Title:           "Policy Research Intern",
			Organization:    "NITI Aayog",
			Department:      "Research",
			Location:        "New Delhi",
			Duration:        "3 Months",
			Stipend:         "₹10,000/month",
			Description:     "Research and analyze policy initiatives",
			RequiredSkills:  []string{"Research", "Data Analysis", "Report Writing"},
			Interests:       []string{"Public Policy", "Economics", "Research"},
			EducationLevels: []string{"graduate", "postgraduate"},
			TotalPositions:  5,
		},
		{
			Title:           "Digital India Intern",
			Organization:    "Ministry of Electronics & IT",
			Department:      "Digital Infrastructure",
			Location:        "New Delhi",
			Duration:        "6 Months",
			Stipend:         "₹20,000/month",
			Description:     "Work on Digital India initiatives",
			RequiredSkills:  []string{"Programming", "Project Management", "Documentation"},
			Interests:       []string{"Technology", "Digital Transformation", "E-Governance"},
			EducationLevels: []string{"graduate"},
			TotalPositions:  10,
		},
	}
}
