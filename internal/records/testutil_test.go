package records

func rec(id, date string, status Status) Record {
	r := NewRecord()
	r.ID = id
	r.RecruiterName = "HR " + id
	r.ContactNumber = "9876543210"
	r.CompanyName = "Company " + id
	r.InterviewDate = date
	r.InterviewStatus = status
	return r
}

func ids(recs []Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}
