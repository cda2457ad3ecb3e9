package api

// Request payloads. Field validation happens in the model constructors;
// these structs only shape the JSON.

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"roles"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	Role        *string `json:"roles"`
}

type createStackRequest struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type updateStackRequest struct {
	Slug *string `json:"slug"`
}

type createBlogRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Image       string `json:"image"`
}

type updateBlogRequest struct {
	Description *string `json:"description"`
	Content     *string `json:"content"`
	Image       *string `json:"image"`
}

type createProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Stack       string `json:"stack"`
	Content     string `json:"content"`
	Image       string `json:"image"`
}

type updateProjectRequest struct {
	Description *string `json:"description"`
	Stack       *string `json:"stack"`
	Content     *string `json:"content"`
	Image       *string `json:"image"`
}

type uploadImageRequest struct {
	Image string `json:"image"`
}
