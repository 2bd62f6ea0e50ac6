package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckCourseAccess is the content-access check behind the premium gate.
// Reaching it means the session was verified and the entitlement claim
// passed; the response hands the identity back for content lookups.
func CheckCourseAccess(c *gin.Context) {
	courseID := c.Param("courseId")
	if courseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Course ID is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"allowed":   true,
		"course_id": courseID,
		"user_id":   c.GetUint("user_id"),
	})
}
