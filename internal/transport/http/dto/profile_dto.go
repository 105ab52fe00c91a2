package dto

type UpdateTenantProfileRequest struct {
	FullName    *string `json:"full_name,omitempty"`
	Occupation  *string `json:"occupation,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	AboutMe     *string `json:"about_me,omitempty"`
	CityPref    *string `json:"city_pref,omitempty"`
	FoodHabit   *string `json:"food_habit,omitempty"`
	HasPets     *bool   `json:"has_pets,omitempty"`
	Smokes      *bool   `json:"smokes,omitempty"`
}

type UpdateHostProfileRequest struct {
	FullName        *string `json:"full_name,omitempty"`
	AboutMe         *string `json:"about_me,omitempty"`
	ResponseTimeHrs *int    `json:"response_time_hrs,omitempty"`
}
