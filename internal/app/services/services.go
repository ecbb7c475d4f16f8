package services

// Services defined in this package:
// - AuthService: Handles authentication, registration and profile access
// - LeaveService: Handles leave request submission, listing and the
//   approve/decline workflow
// - NotificationService: Persists notification records and fans them out to
//   the realtime stream and the push relay
